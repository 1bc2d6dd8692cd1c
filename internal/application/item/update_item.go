package item

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/item"
)

// UpdateItemUseCase 更新商品用例
type UpdateItemUseCase struct {
	itemService item.Service
}

// NewUpdateItemUseCase 创建更新商品用例
func NewUpdateItemUseCase(itemService item.Service) *UpdateItemUseCase {
	return &UpdateItemUseCase{
		itemService: itemService,
	}
}

// UpdateItemRequest 更新商品请求DTO(空字段不修改)
type UpdateItemRequest struct {
	ID          uint
	Name        string
	Description string
	Category    string
}

// Execute 执行更新商品用例
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) (*ItemResponse, error) {
	it, err := uc.itemService.UpdateItem(ctx, req.ID, req.Name, req.Description, req.Category)
	if err != nil {
		return nil, err
	}
	return newItemResponse(it), nil
}
