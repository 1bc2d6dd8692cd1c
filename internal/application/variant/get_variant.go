package variant

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/variant"
)

// GetVariantUseCase 查询规格详情用例
type GetVariantUseCase struct {
	variantService variant.Service
}

// NewGetVariantUseCase 创建查询规格用例
func NewGetVariantUseCase(variantService variant.Service) *GetVariantUseCase {
	return &GetVariantUseCase{
		variantService: variantService,
	}
}

// Execute 执行查询规格用例
func (uc *GetVariantUseCase) Execute(ctx context.Context, id uint) (*VariantResponse, error) {
	v, err := uc.variantService.GetVariantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newVariantResponse(v), nil
}
