package item

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/item"
	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/domain/variant"
	"github.com/checkproof/inventory/internal/infrastructure/persistence/mysql"
)

// DeleteItemUseCase 删除商品用例
// 设计说明:
// 1. 这是跨聚合的编排:商品、规格、库存三个聚合必须在同一事务中删除
// 2. 删除顺序:库存记录 → 规格 → 商品(先删依赖方,保证任一步失败回滚后无孤儿数据)
type DeleteItemUseCase struct {
	itemRepo    item.Repository
	variantRepo variant.Repository
	stockRepo   stock.Repository
	txManager   *mysql.TxManager
}

// NewDeleteItemUseCase 创建删除商品用例
func NewDeleteItemUseCase(
	itemRepo item.Repository,
	variantRepo variant.Repository,
	stockRepo stock.Repository,
	txManager *mysql.TxManager,
) *DeleteItemUseCase {
	return &DeleteItemUseCase{
		itemRepo:    itemRepo,
		variantRepo: variantRepo,
		stockRepo:   stockRepo,
		txManager:   txManager,
	}
}

// Execute 执行删除商品用例
func (uc *DeleteItemUseCase) Execute(ctx context.Context, id uint) error {
	// 1. 确认商品存在(删除不存在的商品返回404而不是静默成功)
	if _, err := uc.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}

	// 2. 在同一事务中级联删除
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 2.1 删除每个规格的库存记录
		variants, err := uc.variantRepo.ListByItemID(txCtx, id)
		if err != nil {
			return err
		}
		for _, v := range variants {
			if err := uc.stockRepo.DeleteByVariantID(txCtx, v.ID); err != nil {
				return err
			}
		}

		// 2.2 删除商品下的所有规格
		if err := uc.variantRepo.DeleteByItemID(txCtx, id); err != nil {
			return err
		}

		// 2.3 删除商品本身
		return uc.itemRepo.Delete(txCtx, id)
	})
}
