package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/checkproof/inventory/internal/domain/item"
	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// itemRepository 商品仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/item/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如描述重复),转换为业务错误
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建商品仓储
func NewItemRepository(db *gorm.DB) item.Repository {
	return &itemRepository{db: db}
}

// Create 创建商品
func (r *itemRepository) Create(ctx context.Context, it *item.Item) error {
	model := &ItemModel{
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return item.ErrDescriptionDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	// 回填自增ID
	it.ID = model.ID
	it.CreatedAt = model.CreatedAt
	it.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找商品
func (r *itemRepository) FindByID(ctx context.Context, id uint) (*item.Item, error) {
	var model ItemModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, item.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toItemEntity(&model), nil
}

// FindByDescription 根据描述查找商品(唯一性检查)
func (r *itemRepository) FindByDescription(ctx context.Context, description string) (*item.Item, error) {
	var model ItemModel
	err := getDB(ctx, r.db).Where("description = ?", description).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, item.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toItemEntity(&model), nil
}

// Update 更新商品信息
func (r *itemRepository) Update(ctx context.Context, it *item.Item) error {
	model := &ItemModel{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		CreatedAt:   it.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return item.ErrDescriptionDuplicate
		}
		return apperrors.Wrap(err, "更新商品失败")
	}

	it.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除商品
func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ItemModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return item.ErrItemNotFound
	}

	return nil
}

// List 分页查询商品列表
func (r *itemRepository) List(ctx context.Context, params item.ListParams) ([]*item.Item, int64, error) {
	var models []ItemModel
	var total int64

	query := getDB(ctx, r.db).Model(&ItemModel{})

	// 关键词搜索(搜索名称、描述)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", keyword, keyword)
	}

	// 按分类过滤
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	// 分页,按创建时间降序
	offset := (params.Page - 1) * params.PageSize
	if err := query.Order("created_at DESC").Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	items := make([]*item.Item, len(models))
	for i := range models {
		items[i] = toItemEntity(&models[i])
	}

	return items, total, nil
}

// toItemEntity GORM模型 → 领域实体
func toItemEntity(model *ItemModel) *item.Item {
	return &item.Item{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Category:    model.Category,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
