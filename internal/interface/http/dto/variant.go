package dto

import "fmt"

// CreateVariantRequest HTTP创建规格请求
type CreateVariantRequest struct {
	Name  string `json:"name" binding:"required,max=100" example:"蓝色/XL"`
	SKU   string `json:"sku" binding:"required,max=64" example:"TS-BLU-XL"`
	Price int64  `json:"price" binding:"min=0" example:"5900"` // 价格(分)
}

// UpdateVariantRequest HTTP更新规格请求
// SKU不可变更;Price为null表示不修改
type UpdateVariantRequest struct {
	Name  string `json:"name" binding:"omitempty,max=100" example:"蓝色/XL"`
	Price *int64 `json:"price" binding:"omitempty,min=0" example:"5900"`
}

// VariantResponse HTTP规格响应
type VariantResponse struct {
	ID        uint   `json:"id" example:"1"`
	ItemID    uint   `json:"item_id" example:"1"`
	Name      string `json:"name" example:"蓝色/XL"`
	SKU       string `json:"sku" example:"TS-BLU-XL"`
	Price     int64  `json:"price" example:"5900"`      // 价格(分)
	PriceYuan string `json:"price_yuan" example:"59.00"` // 价格(元),方便前端显示
	CreatedAt string `json:"created_at" example:"2026-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2026-01-15 10:30:00"`
}

// ListVariantsResponse HTTP规格列表响应
type ListVariantsResponse struct {
	List []VariantResponse `json:"list"`
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
