package variant

import (
	"context"

	"github.com/checkproof/inventory/internal/domain/item"
	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/domain/variant"
	"github.com/checkproof/inventory/internal/infrastructure/persistence/mysql"
)

// CreateVariantUseCase 创建规格用例
// 设计说明:
// 1. 跨聚合编排:规格创建和空库存记录初始化在同一事务中完成
// 2. 初始化空库存记录让后续查询/流转不必区分"有没有记录",
//    懒创建逻辑仍然保留(兜底历史数据)
type CreateVariantUseCase struct {
	itemRepo       item.Repository
	variantService variant.Service
	stockRepo      stock.Repository
	txManager      *mysql.TxManager
}

// NewCreateVariantUseCase 创建规格用例
func NewCreateVariantUseCase(
	itemRepo item.Repository,
	variantService variant.Service,
	stockRepo stock.Repository,
	txManager *mysql.TxManager,
) *CreateVariantUseCase {
	return &CreateVariantUseCase{
		itemRepo:       itemRepo,
		variantService: variantService,
		stockRepo:      stockRepo,
		txManager:      txManager,
	}
}

// CreateVariantRequest 创建规格请求DTO
type CreateVariantRequest struct {
	ItemID uint   // 所属商品ID
	Name   string // 规格名称
	SKU    string // SKU编码(业务唯一)
	Price  int64  // 价格(分)
}

// VariantResponse 规格响应DTO(创建/查询/更新共用)
type VariantResponse struct {
	ID        uint   `json:"id"`
	ItemID    uint   `json:"item_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Price     int64  `json:"price"` // 价格(分)
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// newVariantResponse 领域实体转响应DTO
func newVariantResponse(v *variant.Variant) *VariantResponse {
	return &VariantResponse{
		ID:        v.ID,
		ItemID:    v.ItemID,
		Name:      v.Name,
		SKU:       v.SKU,
		Price:     v.Price,
		CreatedAt: v.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: v.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Execute 执行创建规格用例
func (uc *CreateVariantUseCase) Execute(ctx context.Context, req CreateVariantRequest) (*VariantResponse, error) {
	// 1. 确认所属商品存在
	if _, err := uc.itemRepo.FindByID(ctx, req.ItemID); err != nil {
		return nil, err
	}

	// 2. 在同一事务中创建规格并初始化空库存记录
	var created *variant.Variant
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		v, err := uc.variantService.CreateVariant(txCtx, req.ItemID, req.Name, req.SKU, req.Price)
		if err != nil {
			return err
		}

		// 初始化空库存记录(available=0, allocated=0, version=1)
		if err := uc.stockRepo.Save(txCtx, stock.NewRecord(v.ID)); err != nil {
			return err
		}

		created = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	return newVariantResponse(created), nil
}
