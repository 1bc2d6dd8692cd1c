package dto

// StockQuantityRequest HTTP库存流转请求
// 六种流转(set/increase/decrease/reserve/commit/release)共用:
// 操作类型由路由决定,请求体只携带数量
// gt=0:数量必须为正整数,0和负数在参数绑定层直接拒绝
type StockQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0" example:"10"`
}

// StockResponse HTTP库存响应
// 版本号是内部并发控制细节,不对外暴露
type StockResponse struct {
	VariantID uint   `json:"variant_id" example:"1"`
	Available int    `json:"available" example:"100"` // 在库数量
	Allocated int    `json:"allocated" example:"20"`  // 已预占数量
	Sellable  int    `json:"sellable" example:"80"`   // 可售数量
	UpdatedAt string `json:"updated_at" example:"2026-01-15 10:30:00"`
}

// ListMovementsRequest HTTP库存流水查询请求
type ListMovementsRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// MovementResponse HTTP库存流水响应
type MovementResponse struct {
	ID              uint   `json:"id" example:"1"`
	VariantID       uint   `json:"variant_id" example:"1"`
	Op              string `json:"op" example:"reserve"`
	Quantity        int    `json:"quantity" example:"10"`
	BeforeAvailable int    `json:"before_available" example:"100"`
	BeforeAllocated int    `json:"before_allocated" example:"10"`
	AfterAvailable  int    `json:"after_available" example:"100"`
	AfterAllocated  int    `json:"after_allocated" example:"20"`
	Remark          string `json:"remark,omitempty" example:""`
	CreatedAt       string `json:"created_at" example:"2026-01-15 10:30:00"`
}
