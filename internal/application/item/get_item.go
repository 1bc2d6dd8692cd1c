package item

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/item"
)

// GetItemUseCase 查询商品详情用例
type GetItemUseCase struct {
	itemService item.Service
}

// NewGetItemUseCase 创建查询商品用例
func NewGetItemUseCase(itemService item.Service) *GetItemUseCase {
	return &GetItemUseCase{
		itemService: itemService,
	}
}

// Execute 执行查询商品用例
func (uc *GetItemUseCase) Execute(ctx context.Context, id uint) (*ItemResponse, error) {
	it, err := uc.itemService.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newItemResponse(it), nil
}
