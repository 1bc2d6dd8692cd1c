package variant

import (
	"context"
)

// Repository 规格仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建规格(SKU重复返回ErrSKUDuplicate)
	Create(ctx context.Context, v *Variant) error

	// FindByID 根据ID查找规格,不存在返回ErrVariantNotFound
	FindByID(ctx context.Context, id uint) (*Variant, error)

	// FindBySKU 根据SKU查找规格(唯一性检查)
	FindBySKU(ctx context.Context, sku string) (*Variant, error)

	// ListByItemID 查询某商品下的所有规格
	ListByItemID(ctx context.Context, itemID uint) ([]*Variant, error)

	// Update 更新规格信息
	Update(ctx context.Context, v *Variant) error

	// Delete 删除规格
	Delete(ctx context.Context, id uint) error

	// DeleteByItemID 删除某商品下的所有规格(商品删除时级联)
	DeleteByItemID(ctx context.Context, itemID uint) error
}
