package stock

import (
	"context"

	"go.uber.org/zap"

	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/domain/variant"
)

// GetStockUseCase 查询库存用例
// 设计说明:
// 1. 旁路缓存(Cache-Aside):先查快照缓存,未命中回源数据库并回填
// 2. 缓存故障降级为直接查库,查询可用性优先于速度
// 3. 规格存在但库存记录不存在时返回空库存视图(可售为0),
//    调用方不必区分"没有记录"和"数量为0"
type GetStockUseCase struct {
	variantRepo variant.Repository
	stockRepo   stock.Repository
	cache       SnapshotCache // 可为nil(未启用Redis)
	logger      *zap.Logger
}

// NewGetStockUseCase 创建查询库存用例
func NewGetStockUseCase(
	variantRepo variant.Repository,
	stockRepo stock.Repository,
	cache SnapshotCache,
	logger *zap.Logger,
) *GetStockUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GetStockUseCase{
		variantRepo: variantRepo,
		stockRepo:   stockRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Execute 执行查询库存用例
func (uc *GetStockUseCase) Execute(ctx context.Context, variantID uint) (*StockView, error) {
	// 1. 查快照缓存(故障降级,不影响主流程)
	if uc.cache != nil {
		view, err := uc.cache.Get(ctx, variantID)
		if err != nil {
			uc.logger.Warn("库存快照缓存读取失败",
				zap.Uint("variant_id", variantID), zap.Error(err))
		} else if view != nil {
			return view, nil
		}
	}

	// 2. 确认规格存在
	if _, err := uc.variantRepo.FindByID(ctx, variantID); err != nil {
		return nil, err
	}

	// 3. 回源数据库
	rec, err := uc.stockRepo.GetByVariantID(ctx, variantID)
	if err == stock.ErrStockNotFound {
		rec = stock.NewRecord(variantID)
	} else if err != nil {
		return nil, err
	}

	view := newStockView(rec)

	// 4. 回填缓存(短TTL快照,写路径上会主动失效)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, view); err != nil {
			uc.logger.Warn("库存快照缓存回填失败",
				zap.Uint("variant_id", variantID), zap.Error(err))
		}
	}

	return view, nil
}
