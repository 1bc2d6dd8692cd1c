package item

import (
	"strings"
	"time"
)

// Item 商品实体(聚合根)
// DDD设计说明:
// 1. Item是商品目录聚合的根实体,描述"卖什么"
// 2. 具体可售卖的单元是规格(Variant),库存挂在规格上而不是商品上
// 3. Description作为业务唯一标识(数据库层保证唯一性)
type Item struct {
	ID          uint
	Name        string // 商品名称
	Description string // 商品描述(业务唯一)
	Category    string // 分类(可选)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewItem 创建新商品(工厂方法)
func NewItem(name, description, category string) *Item {
	now := time.Now()
	return &Item{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate 校验商品基本属性
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(i.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// UpdateInfo 更新商品基本信息(空值表示不修改)
func (i *Item) UpdateInfo(name, description, category string) {
	if name != "" {
		i.Name = strings.TrimSpace(name)
	}
	if description != "" {
		i.Description = strings.TrimSpace(description)
	}
	if category != "" {
		i.Category = strings.TrimSpace(category)
	}
	i.UpdatedAt = time.Now()
}
