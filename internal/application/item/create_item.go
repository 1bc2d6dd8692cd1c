package item

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/item"
)

// CreateItemUseCase 创建商品用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO(Data Transfer Object),与HTTP层解耦
// 3. 此用例比较简单,只需调用领域服务即可
type CreateItemUseCase struct {
	itemService item.Service
}

// NewCreateItemUseCase 创建商品用例
func NewCreateItemUseCase(itemService item.Service) *CreateItemUseCase {
	return &CreateItemUseCase{
		itemService: itemService,
	}
}

// CreateItemRequest 创建商品请求DTO
type CreateItemRequest struct {
	Name        string // 商品名称
	Description string // 商品描述(业务唯一)
	Category    string // 分类(可选)
}

// ItemResponse 商品响应DTO(创建/查询/更新共用)
type ItemResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// newItemResponse 领域实体转响应DTO
func newItemResponse(it *item.Item) *ItemResponse {
	return &ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		CreatedAt:   it.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   it.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Execute 执行创建商品用例
// 业务规则校验(非空、描述唯一)由领域服务负责
func (uc *CreateItemUseCase) Execute(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	it, err := uc.itemService.CreateItem(ctx, req.Name, req.Description, req.Category)
	if err != nil {
		return nil, err
	}
	return newItemResponse(it), nil
}
