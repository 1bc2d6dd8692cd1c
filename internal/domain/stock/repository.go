package stock

import (
	"context"
)

// Repository 库存仓储接口
// 设计说明:
// 1. 接口定义在领域层,实现在基础设施层(依赖倒置)
// 2. Save承载乐观锁语义:
//    - Version==0视为新记录,执行插入(成功后Version=1);
//      插入撞唯一键说明并发创建,返回ErrVersionConflict交由上层重试
//    - Version>0执行条件更新(WHERE variant_id=? AND version=?),
//      影响行数为0返回ErrVersionConflict
// 3. 所有方法接收context,配合TxManager实现事务传播
type Repository interface {
	// GetByVariantID 按规格ID查询库存记录,不存在返回ErrStockNotFound
	GetByVariantID(ctx context.Context, variantID uint) (*Record, error)

	// Save 保存库存记录(乐观锁,见上)
	// 成功后递增rec.Version
	Save(ctx context.Context, rec *Record) error

	// DeleteByVariantID 删除库存记录(规格删除时级联)
	// 记录不存在不视为错误
	DeleteByVariantID(ctx context.Context, variantID uint) error

	// ListLowStock 查询可售数量低于阈值的库存记录(低库存巡检)
	ListLowStock(ctx context.Context, threshold int) ([]*Record, error)
}

// MovementRepository 库存流水仓储接口
type MovementRepository interface {
	// Create 追加一条流水
	Create(ctx context.Context, mv *Movement) error

	// ListByVariantID 分页查询某规格的流水(按时间倒序)
	ListByVariantID(ctx context.Context, variantID uint, offset, limit int) ([]*Movement, int64, error)
}
