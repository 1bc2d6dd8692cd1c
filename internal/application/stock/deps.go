package stock

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/stock"
)

// 库存用例对外部设施的依赖接口
// 设计说明:
// 1. 接口定义在使用方,基础设施层提供实现(依赖倒置)
// 2. 事务/缓存/消息都可以被单元测试中的Fake替换,
//    库存流转的并发语义(重试、冲突)不连数据库也能验证

// TxManager 事务执行接口(由mysql.TxManager实现)
// fn内的所有仓储操作在同一事务中执行,fn返回error时回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SnapshotCache 库存快照缓存接口(由redis.StockCache实现)
// Get未命中返回(nil, nil),缓存故障应降级而不是让请求失败
type SnapshotCache interface {
	Get(ctx context.Context, variantID uint) (*StockView, error)
	Set(ctx context.Context, view *StockView) error
	Invalidate(ctx context.Context, variantID uint) error
}

// EventPublisher 库存事件发布接口(由mq.StockEventPublisher实现)
type EventPublisher interface {
	PublishStockChanged(ctx context.Context, ev *StockChangedEvent) error
	PublishStockLow(ctx context.Context, ev *StockLowEvent) error
}

// StockView 库存视图DTO(查询响应和缓存快照共用)
type StockView struct {
	VariantID uint   `json:"variant_id"`
	Available int    `json:"available"` // 在库数量
	Allocated int    `json:"allocated"` // 已预占数量
	Sellable  int    `json:"sellable"`  // 可售数量 = available - allocated
	Version   int64  `json:"version"`   // 乐观锁版本号
	UpdatedAt string `json:"updated_at"`
}

// newStockView 领域实体转视图DTO
func newStockView(rec *stock.Record) *StockView {
	return &StockView{
		VariantID: rec.VariantID,
		Available: rec.Available,
		Allocated: rec.Allocated,
		Sellable:  rec.Sellable(),
		Version:   rec.Version,
		UpdatedAt: rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
