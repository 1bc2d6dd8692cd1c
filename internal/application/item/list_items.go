package item

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/item"
)

// ListItemsUseCase 商品列表用例
type ListItemsUseCase struct {
	itemService item.Service
}

// NewListItemsUseCase 创建商品列表用例
func NewListItemsUseCase(itemService item.Service) *ListItemsUseCase {
	return &ListItemsUseCase{
		itemService: itemService,
	}
}

// ListItemsRequest 商品列表请求DTO
type ListItemsRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词
	Category string // 按分类过滤
}

// ListItemsResponse 商品列表响应DTO
type ListItemsResponse struct {
	Items []*ItemResponse `json:"items"`
	Total int64           `json:"total"`
}

// Execute 执行商品列表用例
func (uc *ListItemsUseCase) Execute(ctx context.Context, req ListItemsRequest) (*ListItemsResponse, error) {
	// 分页参数兜底
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	items, total, err := uc.itemService.ListItems(ctx, item.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Category: req.Category,
	})
	if err != nil {
		return nil, err
	}

	resp := &ListItemsResponse{
		Items: make([]*ItemResponse, 0, len(items)),
		Total: total,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, newItemResponse(it))
	}
	return resp, nil
}
