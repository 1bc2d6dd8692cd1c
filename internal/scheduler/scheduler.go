// Package scheduler 提供后台定时任务
//
// 当前只有一个任务:低库存巡检
// 写路径上的告警只覆盖"流转把可售数量打到阈值以下"的瞬间,
// 巡检兜底覆盖其余情况(告警事件丢失、阈值调整后存量低库存)
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	appstock "github.com/checkproof/inventory/internal/application/stock"
	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/pkg/metrics"
)

// Scheduler 定时任务调度器
type Scheduler struct {
	cron      *cron.Cron
	stockRepo stock.Repository
	publisher appstock.EventPublisher // 可为nil(未启用MQ,只记日志)
	threshold int
	logger    *zap.Logger
}

// New 创建调度器
func New(stockRepo stock.Repository, publisher appstock.EventPublisher, threshold int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(),
		stockRepo: stockRepo,
		publisher: publisher,
		threshold: threshold,
		logger:    logger,
	}
}

// Start 注册任务并启动调度
// spec是cron表达式,如 "*/5 * * * *"(每5分钟)
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweepLowStock); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("定时任务已启动", zap.String("low_stock_cron", spec))
	return nil
}

// Stop 停止调度(等待正在执行的任务完成)
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// sweepLowStock 低库存巡检
func (s *Scheduler) sweepLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := s.stockRepo.ListLowStock(ctx, s.threshold)
	if err != nil {
		s.logger.Error("低库存巡检查询失败", zap.Error(err))
		return
	}
	if len(records) == 0 {
		return
	}

	s.logger.Warn("发现低库存规格",
		zap.Int("count", len(records)),
		zap.Int("threshold", s.threshold))

	for _, rec := range records {
		if s.publisher != nil {
			ev := appstock.NewStockLowEvent(rec.VariantID, rec.Sellable(), s.threshold)
			if err := s.publisher.PublishStockLow(ctx, ev); err != nil {
				s.logger.Error("低库存告警事件发布失败",
					zap.Uint("variant_id", rec.VariantID), zap.Error(err))
				continue
			}
		}
		if metrics.LowStockAlertsTotal != nil {
			metrics.LowStockAlertsTotal.Inc()
		}
	}
}
