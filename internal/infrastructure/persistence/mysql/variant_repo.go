package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/checkproof/inventory/internal/domain/variant"
	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// variantRepository 规格仓储实现(MySQL)
type variantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建规格仓储
func NewVariantRepository(db *gorm.DB) variant.Repository {
	return &variantRepository{db: db}
}

// Create 创建规格
func (r *variantRepository) Create(ctx context.Context, v *variant.Variant) error {
	model := &VariantModel{
		ItemID: v.ItemID,
		Name:   v.Name,
		SKU:    v.SKU,
		Price:  v.Price,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return variant.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "创建规格失败")
	}

	// 回填自增ID
	v.ID = model.ID
	v.CreatedAt = model.CreatedAt
	v.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找规格
func (r *variantRepository) FindByID(ctx context.Context, id uint) (*variant.Variant, error) {
	var model VariantModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, variant.ErrVariantNotFound
		}
		return nil, apperrors.Wrap(err, "查询规格失败")
	}

	return toVariantEntity(&model), nil
}

// FindBySKU 根据SKU查找规格(唯一性检查)
func (r *variantRepository) FindBySKU(ctx context.Context, sku string) (*variant.Variant, error) {
	var model VariantModel
	err := getDB(ctx, r.db).Where("sku = ?", sku).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, variant.ErrVariantNotFound
		}
		return nil, apperrors.Wrap(err, "查询规格失败")
	}

	return toVariantEntity(&model), nil
}

// ListByItemID 查询某商品下的所有规格
func (r *variantRepository) ListByItemID(ctx context.Context, itemID uint) ([]*variant.Variant, error) {
	var models []VariantModel
	err := getDB(ctx, r.db).Where("item_id = ?", itemID).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询规格列表失败")
	}

	variants := make([]*variant.Variant, len(models))
	for i := range models {
		variants[i] = toVariantEntity(&models[i])
	}
	return variants, nil
}

// Update 更新规格信息
func (r *variantRepository) Update(ctx context.Context, v *variant.Variant) error {
	model := &VariantModel{
		ID:        v.ID,
		ItemID:    v.ItemID,
		Name:      v.Name,
		SKU:       v.SKU,
		Price:     v.Price,
		CreatedAt: v.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新规格失败")
	}

	v.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除规格
func (r *variantRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&VariantModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除规格失败")
	}
	if result.RowsAffected == 0 {
		return variant.ErrVariantNotFound
	}

	return nil
}

// DeleteByItemID 删除某商品下的所有规格(商品删除时级联)
func (r *variantRepository) DeleteByItemID(ctx context.Context, itemID uint) error {
	if err := getDB(ctx, r.db).Where("item_id = ?", itemID).Delete(&VariantModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除商品规格失败")
	}
	return nil
}

// toVariantEntity GORM模型 → 领域实体
func toVariantEntity(model *VariantModel) *variant.Variant {
	return &variant.Variant{
		ID:        model.ID,
		ItemID:    model.ItemID,
		Name:      model.Name,
		SKU:       model.SKU,
		Price:     model.Price,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
