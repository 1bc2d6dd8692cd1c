package stock

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/domain/variant"
	apperrors "github.com/checkproof/inventory/pkg/errors"
	"github.com/checkproof/inventory/pkg/metrics"
	"github.com/checkproof/inventory/pkg/retry"
	"github.com/checkproof/inventory/pkg/tracing"
)

// ApplyTransitionUseCase 库存流转用例(整个服务的核心)
//
// 设计说明:
// 1. 读改写全程乐观并发:不加行锁,靠版本号条件更新检测冲突
// 2. "加载或创建"必须在重试循环内部:每次冲突后都要重读最新状态,
//    包括"别人刚创建了这条记录"这种情况
// 3. 单次尝试是一个完整事务:读记录 → 纯计算流转 → 带版本保存 → 写流水,
//    任何一步失败整体回滚
// 4. 业务拒绝(库存不足、超额提交)不重试——重读也不会改变结论;
//    只有版本冲突重试,耗尽后对外返回Conflict
// 5. 缓存失效、事件发布、指标都在事务提交之后,尽力而为,不影响主流程
type ApplyTransitionUseCase struct {
	variantRepo  variant.Repository
	stockRepo    stock.Repository
	movementRepo stock.MovementRepository
	txManager    TxManager
	cache        SnapshotCache  // 可为nil(未启用Redis)
	publisher    EventPublisher // 可为nil(未启用MQ)
	policy       retry.Policy
	lowThreshold int // 低库存告警阈值(<=0表示不告警)
	logger       *zap.Logger
}

// NewApplyTransitionUseCase 创建库存流转用例
func NewApplyTransitionUseCase(
	variantRepo variant.Repository,
	stockRepo stock.Repository,
	movementRepo stock.MovementRepository,
	txManager TxManager,
	cache SnapshotCache,
	publisher EventPublisher,
	policy retry.Policy,
	lowThreshold int,
	logger *zap.Logger,
) *ApplyTransitionUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplyTransitionUseCase{
		variantRepo:  variantRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
		policy:       policy,
		lowThreshold: lowThreshold,
		logger:       logger,
	}
}

// ApplyTransitionRequest 库存流转请求DTO
type ApplyTransitionRequest struct {
	VariantID uint     // 规格ID
	Op        stock.Op // 流转操作类型
	Quantity  int      // 流转数量(必须>0)
}

// Execute 执行库存流转用例
//
// 流程:
//  1. 参数校验 + 规格存在性检查
//  2. 重试循环,每次尝试是一个事务:
//     2.1 加载库存记录;不存在且操作支持懒创建则新建空记录
//     2.2 调用领域方法执行流转(纯计算)
//     2.3 带版本号保存(冲突返回ErrVersionConflict触发重试)
//     2.4 同一事务内追加流水
//  3. 提交后副作用:缓存失效、发布事件、低库存告警、指标
func (uc *ApplyTransitionUseCase) Execute(ctx context.Context, req ApplyTransitionRequest) (*StockView, error) {
	ctx, span := tracing.StartSpan(ctx, "inventory", "ApplyTransition")
	defer span.End()

	start := time.Now()

	// 1. 参数校验
	if !req.Op.Valid() {
		return nil, stock.ErrUnknownOp
	}
	if req.Quantity <= 0 {
		return nil, stock.ErrInvalidQuantity
	}

	// 2. 规格存在性检查(对不存在的规格直接404,不进入重试循环)
	if _, err := uc.variantRepo.FindByID(ctx, req.VariantID); err != nil {
		return nil, err
	}

	// 3. 乐观并发重试循环
	var result *stock.Record
	attempt := 0
	err := uc.policy.Do(ctx, func() error {
		attempt++
		if attempt > 1 && metrics.StockConflictRetriesTotal != nil {
			metrics.StockConflictRetriesTotal.Inc()
		}

		return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
			// 3.1 加载或创建(必须在循环内:冲突后要重读最新状态)
			rec, err := uc.stockRepo.GetByVariantID(txCtx, req.VariantID)
			if err == stock.ErrStockNotFound {
				if req.Op.RequiresExisting() {
					return err
				}
				rec = stock.NewRecord(req.VariantID)
			} else if err != nil {
				return err
			}

			// 3.2 纯计算流转(业务拒绝在这里发生,不会重试)
			before := *rec
			if err := rec.Apply(req.Op, req.Quantity); err != nil {
				return err
			}

			// 3.3 带版本号保存(冲突 → ErrVersionConflict → 重试)
			if err := uc.stockRepo.Save(txCtx, rec); err != nil {
				return err
			}

			// 3.4 同一事务内追加流水(状态与流水严格一致)
			mv := stock.NewMovement(req.Op, req.Quantity, &before, rec, transitionRemark(req.Op, &before))
			if err := uc.movementRepo.Create(txCtx, mv); err != nil {
				return err
			}

			result = rec
			return nil
		})
	}, stock.IsVersionConflict)

	if err != nil {
		uc.observe(req.Op, resultLabel(err), start)
		if stock.IsVersionConflict(err) {
			// 重试耗尽,对外统一返回Conflict(调用方可自行重试)
			uc.logger.Warn("库存流转冲突重试耗尽",
				zap.Uint("variant_id", req.VariantID),
				zap.String("op", string(req.Op)),
				zap.Int("attempts", attempt))
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	// 4. 提交后副作用(尽力而为,失败只记日志)
	uc.afterCommit(ctx, req, result)
	uc.observe(req.Op, "success", start)

	uc.logger.Info("库存流转成功",
		zap.Uint("variant_id", req.VariantID),
		zap.String("op", string(req.Op)),
		zap.Int("quantity", req.Quantity),
		zap.Int("available", result.Available),
		zap.Int("allocated", result.Allocated),
		zap.Int64("version", result.Version),
		zap.Int("attempts", attempt),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)))

	return newStockView(result), nil
}

// afterCommit 事务提交后的副作用:缓存失效、事件发布、低库存告警
func (uc *ApplyTransitionUseCase) afterCommit(ctx context.Context, req ApplyTransitionRequest, rec *stock.Record) {
	// 缓存失效(下次查询回源重建)
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, rec.VariantID); err != nil {
			uc.logger.Warn("库存快照缓存失效失败",
				zap.Uint("variant_id", rec.VariantID), zap.Error(err))
		}
	}

	if uc.publisher == nil {
		return
	}

	// 库存变更事件
	if err := uc.publisher.PublishStockChanged(ctx, NewStockChangedEvent(req.Op, req.Quantity, rec)); err != nil {
		uc.logger.Warn("库存变更事件发布失败",
			zap.Uint("variant_id", rec.VariantID), zap.Error(err))
	}

	// 低库存告警(可售数量降到阈值以下)
	if uc.lowThreshold > 0 && rec.Sellable() < uc.lowThreshold {
		if err := uc.publisher.PublishStockLow(ctx, NewStockLowEvent(rec.VariantID, rec.Sellable(), uc.lowThreshold)); err != nil {
			uc.logger.Warn("低库存告警事件发布失败",
				zap.Uint("variant_id", rec.VariantID), zap.Error(err))
		} else if metrics.LowStockAlertsTotal != nil {
			metrics.LowStockAlertsTotal.Inc()
		}
	}
}

// observe 记录流转指标
func (uc *ApplyTransitionUseCase) observe(op stock.Op, result string, start time.Time) {
	if metrics.StockTransitionsTotal != nil {
		metrics.StockTransitionsTotal.WithLabelValues(string(op), result).Inc()
	}
	if metrics.StockTransitionDuration != nil {
		metrics.StockTransitionDuration.Observe(time.Since(start).Seconds())
	}
}

// resultLabel 错误到指标result标签的映射
func resultLabel(err error) string {
	switch apperrors.Code(err) {
	case apperrors.ErrCodeConflict:
		return "conflict"
	case apperrors.ErrCodeOutOfStock, apperrors.ErrCodeInvalidTransition,
		apperrors.ErrCodeStockNotFound, apperrors.ErrCodeInvalidParams:
		return "rejected"
	default:
		return "error"
	}
}

// transitionRemark 生成流水备注
// 盘点覆盖会丢弃未决预占,把丢弃数量记录到流水里供对账
func transitionRemark(op stock.Op, before *stock.Record) string {
	if op == stock.OpSetManual && before.Allocated > 0 {
		return fmt.Sprintf("盘点覆盖丢弃预占: %d", before.Allocated)
	}
	return ""
}
