package mq

import (
	"context"

	appstock "github.com/checkproof/inventory/internal/application/stock"
	"github.com/checkproof/inventory/pkg/mq"
)

// 库存事件路由键
const (
	RoutingKeyStockChanged = "stock.changed" // 库存变更
	RoutingKeyStockLow     = "stock.low"     // 低库存告警
)

// StockEventPublisher 库存事件发布者
// 设计说明:
// 1. 实现application/stock.EventPublisher接口
// 2. 封装pkg/mq的通用Publisher,绑定库存领域的路由键
// 3. 事件发布在事务提交之后,尽力而为;需要严格不丢的场景
//    应升级为发件箱模式(outbox),当前规模不引入
type StockEventPublisher struct {
	publisher *mq.Publisher
}

// NewStockEventPublisher 创建库存事件发布者
func NewStockEventPublisher(publisher *mq.Publisher) *StockEventPublisher {
	return &StockEventPublisher{publisher: publisher}
}

// PublishStockChanged 发布库存变更事件
func (p *StockEventPublisher) PublishStockChanged(ctx context.Context, ev *appstock.StockChangedEvent) error {
	return p.publisher.Publish(ctx, RoutingKeyStockChanged, ev)
}

// PublishStockLow 发布低库存告警事件
func (p *StockEventPublisher) PublishStockLow(ctx context.Context, ev *appstock.StockLowEvent) error {
	return p.publisher.Publish(ctx, RoutingKeyStockLow, ev)
}
