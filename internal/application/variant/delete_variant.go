package variant

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/domain/variant"
	"github.com/checkproof/inventory/internal/infrastructure/persistence/mysql"
)

// DeleteVariantUseCase 删除规格用例
// 设计说明:库存记录和规格在同一事务中删除,先删库存再删规格
type DeleteVariantUseCase struct {
	variantRepo variant.Repository
	stockRepo   stock.Repository
	txManager   *mysql.TxManager
}

// NewDeleteVariantUseCase 创建删除规格用例
func NewDeleteVariantUseCase(
	variantRepo variant.Repository,
	stockRepo stock.Repository,
	txManager *mysql.TxManager,
) *DeleteVariantUseCase {
	return &DeleteVariantUseCase{
		variantRepo: variantRepo,
		stockRepo:   stockRepo,
		txManager:   txManager,
	}
}

// Execute 执行删除规格用例
func (uc *DeleteVariantUseCase) Execute(ctx context.Context, id uint) error {
	// 1. 确认规格存在
	if _, err := uc.variantRepo.FindByID(ctx, id); err != nil {
		return err
	}

	// 2. 在同一事务中先删库存记录再删规格
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.stockRepo.DeleteByVariantID(txCtx, id); err != nil {
			return err
		}
		return uc.variantRepo.Delete(txCtx, id)
	})
}
