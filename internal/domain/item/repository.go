package item

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建商品(描述重复返回ErrDescriptionDuplicate)
	Create(ctx context.Context, it *Item) error

	// FindByID 根据ID查找商品,不存在返回ErrItemNotFound
	FindByID(ctx context.Context, id uint) (*Item, error)

	// FindByDescription 根据描述查找商品(唯一性检查)
	FindByDescription(ctx context.Context, description string) (*Item, error)

	// Update 更新商品信息
	Update(ctx context.Context, it *Item) error

	// Delete 删除商品
	Delete(ctx context.Context, id uint) error

	// List 分页查询商品列表
	List(ctx context.Context, params ListParams) ([]*Item, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索名称、描述)
	Category string // 按分类过滤
}
