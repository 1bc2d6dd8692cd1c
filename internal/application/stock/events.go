package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/checkproof/inventory/internal/domain/stock"
)

// 库存领域事件定义
// 设计说明:
// 1. 每个事件携带全局唯一EventID,消费方据此幂等去重
// 2. 事件携带流转后的完整快照而不只是增量,下游无需回查

// StockChangedEvent 库存变更事件(routing key: stock.changed)
// 每次流转成功后发布,下游(报表、搜索、补货)按需订阅
type StockChangedEvent struct {
	EventID    string    `json:"event_id"`
	VariantID  uint      `json:"variant_id"`
	Op         string    `json:"op"`       // 流转操作类型
	Quantity   int       `json:"quantity"` // 请求数量
	Available  int       `json:"available"`
	Allocated  int       `json:"allocated"`
	Sellable   int       `json:"sellable"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewStockChangedEvent 构建库存变更事件
func NewStockChangedEvent(op stock.Op, qty int, rec *stock.Record) *StockChangedEvent {
	return &StockChangedEvent{
		EventID:    uuid.NewString(),
		VariantID:  rec.VariantID,
		Op:         string(op),
		Quantity:   qty,
		Available:  rec.Available,
		Allocated:  rec.Allocated,
		Sellable:   rec.Sellable(),
		Version:    rec.Version,
		OccurredAt: time.Now(),
	}
}

// StockLowEvent 低库存告警事件(routing key: stock.low)
// 可售数量降到阈值以下时发布,补货系统订阅
type StockLowEvent struct {
	EventID    string    `json:"event_id"`
	VariantID  uint      `json:"variant_id"`
	Sellable   int       `json:"sellable"`
	Threshold  int       `json:"threshold"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewStockLowEvent 构建低库存告警事件
func NewStockLowEvent(variantID uint, sellable, threshold int) *StockLowEvent {
	return &StockLowEvent{
		EventID:    uuid.NewString(),
		VariantID:  variantID,
		Sellable:   sellable,
		Threshold:  threshold,
		OccurredAt: time.Now(),
	}
}
