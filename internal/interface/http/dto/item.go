package dto

// CreateItemRequest HTTP创建商品请求
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"纯棉T恤"`
	Description string `json:"description" binding:"required,max=255" example:"经典圆领纯棉T恤"`
	Category    string `json:"category" binding:"omitempty,max=50" example:"服装"`
}

// UpdateItemRequest HTTP更新商品请求(空字段不修改)
type UpdateItemRequest struct {
	Name        string `json:"name" binding:"omitempty,max=200" example:"纯棉T恤"`
	Description string `json:"description" binding:"omitempty,max=255" example:"经典圆领纯棉T恤"`
	Category    string `json:"category" binding:"omitempty,max=50" example:"服装"`
}

// ListItemsRequest HTTP商品列表请求
type ListItemsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"T恤"`
	Category string `form:"category" binding:"omitempty,max=50" example:"服装"`
}

// ItemResponse HTTP商品响应
type ItemResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"纯棉T恤"`
	Description string `json:"description" example:"经典圆领纯棉T恤"`
	Category    string `json:"category" example:"服装"`
	CreatedAt   string `json:"created_at" example:"2026-01-15 10:30:00"`
	UpdatedAt   string `json:"updated_at" example:"2026-01-15 10:30:00"`
}
