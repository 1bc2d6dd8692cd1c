package stock

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/domain/variant"
)

// ListMovementsUseCase 库存流水查询用例(对账、排障)
type ListMovementsUseCase struct {
	variantRepo  variant.Repository
	movementRepo stock.MovementRepository
}

// NewListMovementsUseCase 创建流水查询用例
func NewListMovementsUseCase(variantRepo variant.Repository, movementRepo stock.MovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{
		variantRepo:  variantRepo,
		movementRepo: movementRepo,
	}
}

// ListMovementsRequest 流水查询请求DTO
type ListMovementsRequest struct {
	VariantID uint
	Page      int
	PageSize  int
}

// MovementResponse 流水响应DTO
type MovementResponse struct {
	ID              uint   `json:"id"`
	VariantID       uint   `json:"variant_id"`
	Op              string `json:"op"`
	Quantity        int    `json:"quantity"`
	BeforeAvailable int    `json:"before_available"`
	BeforeAllocated int    `json:"before_allocated"`
	AfterAvailable  int    `json:"after_available"`
	AfterAllocated  int    `json:"after_allocated"`
	Remark          string `json:"remark,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// ListMovementsResponse 流水列表响应DTO
type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movements"`
	Total     int64               `json:"total"`
}

// Execute 执行流水查询用例(按时间倒序分页)
func (uc *ListMovementsUseCase) Execute(ctx context.Context, req ListMovementsRequest) (*ListMovementsResponse, error) {
	// 1. 确认规格存在
	if _, err := uc.variantRepo.FindByID(ctx, req.VariantID); err != nil {
		return nil, err
	}

	// 2. 分页参数兜底
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}
	offset := (req.Page - 1) * req.PageSize

	// 3. 查询流水
	movements, total, err := uc.movementRepo.ListByVariantID(ctx, req.VariantID, offset, req.PageSize)
	if err != nil {
		return nil, err
	}

	resp := &ListMovementsResponse{
		Movements: make([]*MovementResponse, 0, len(movements)),
		Total:     total,
	}
	for _, mv := range movements {
		resp.Movements = append(resp.Movements, &MovementResponse{
			ID:              mv.ID,
			VariantID:       mv.VariantID,
			Op:              string(mv.Op),
			Quantity:        mv.Quantity,
			BeforeAvailable: mv.BeforeAvailable,
			BeforeAllocated: mv.BeforeAllocated,
			AfterAvailable:  mv.AfterAvailable,
			AfterAllocated:  mv.AfterAllocated,
			Remark:          mv.Remark,
			CreatedAt:       mv.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}
