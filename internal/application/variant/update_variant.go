package variant

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/variant"
)

// UpdateVariantUseCase 更新规格用例
type UpdateVariantUseCase struct {
	variantService variant.Service
}

// NewUpdateVariantUseCase 创建更新规格用例
func NewUpdateVariantUseCase(variantService variant.Service) *UpdateVariantUseCase {
	return &UpdateVariantUseCase{
		variantService: variantService,
	}
}

// UpdateVariantRequest 更新规格请求DTO
// SKU不可变更;Price为负表示不修改
type UpdateVariantRequest struct {
	ID    uint
	Name  string
	Price int64
}

// Execute 执行更新规格用例
func (uc *UpdateVariantUseCase) Execute(ctx context.Context, req UpdateVariantRequest) (*VariantResponse, error) {
	v, err := uc.variantService.UpdateVariant(ctx, req.ID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	return newVariantResponse(v), nil
}
