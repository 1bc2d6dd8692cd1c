package variant

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/item"
	"github.com/checkproof/inventory/internal/domain/variant"
)

// ListVariantsUseCase 商品规格列表用例
type ListVariantsUseCase struct {
	itemRepo       item.Repository
	variantService variant.Service
}

// NewListVariantsUseCase 创建规格列表用例
func NewListVariantsUseCase(itemRepo item.Repository, variantService variant.Service) *ListVariantsUseCase {
	return &ListVariantsUseCase{
		itemRepo:       itemRepo,
		variantService: variantService,
	}
}

// ListVariantsResponse 规格列表响应DTO
type ListVariantsResponse struct {
	Variants []*VariantResponse `json:"variants"`
}

// Execute 执行规格列表用例(按商品ID)
func (uc *ListVariantsUseCase) Execute(ctx context.Context, itemID uint) (*ListVariantsResponse, error) {
	// 1. 确认商品存在(商品不存在返回404,而不是空列表)
	if _, err := uc.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	// 2. 查询规格
	variants, err := uc.variantService.ListVariantsByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := &ListVariantsResponse{
		Variants: make([]*VariantResponse, 0, len(variants)),
	}
	for _, v := range variants {
		resp.Variants = append(resp.Variants, newVariantResponse(v))
	}
	return resp, nil
}
