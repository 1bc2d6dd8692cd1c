package variant

import (
	"context"
)

// Service 规格领域服务接口
// 设计说明:
// 1. 封装SKU唯一性等跨实体业务规则
// 2. 库存记录的初始化/级联删除属于跨聚合编排,放在应用层事务中,
//    领域服务只管规格自身
type Service interface {
	// CreateVariant 创建规格
	// 业务规则:属性非空、价格非负、SKU不能重复
	CreateVariant(ctx context.Context, itemID uint, name, sku string, price int64) (*Variant, error)

	// GetVariantByID 根据ID获取规格详情
	GetVariantByID(ctx context.Context, id uint) (*Variant, error)

	// ListVariantsByItemID 查询某商品下的所有规格
	ListVariantsByItemID(ctx context.Context, itemID uint) ([]*Variant, error)

	// UpdateVariant 更新规格信息(SKU不可变更)
	UpdateVariant(ctx context.Context, id uint, name string, price int64) (*Variant, error)

	// DeleteVariant 删除规格
	DeleteVariant(ctx context.Context, id uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建规格领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateVariant 创建规格
func (s *service) CreateVariant(ctx context.Context, itemID uint, name, sku string, price int64) (*Variant, error) {
	// 1. 创建实体并校验基本属性
	v := NewVariant(itemID, name, sku, price)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	// 2. SKU唯一性检查(数据库唯一索引兜底)
	existing, err := s.repo.FindBySKU(ctx, v.SKU)
	if err == nil && existing != nil {
		return nil, ErrSKUDuplicate
	}
	if err != nil && err != ErrVariantNotFound {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// GetVariantByID 根据ID获取规格
func (s *service) GetVariantByID(ctx context.Context, id uint) (*Variant, error) {
	return s.repo.FindByID(ctx, id)
}

// ListVariantsByItemID 查询某商品下的所有规格
func (s *service) ListVariantsByItemID(ctx context.Context, itemID uint) ([]*Variant, error) {
	return s.repo.ListByItemID(ctx, itemID)
}

// UpdateVariant 更新规格信息
func (s *service) UpdateVariant(ctx context.Context, id uint, name string, price int64) (*Variant, error) {
	// 1. 查询规格
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新并持久化
	v.UpdateInfo(name, price)
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// DeleteVariant 删除规格
func (s *service) DeleteVariant(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
