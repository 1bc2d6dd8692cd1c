package variant

import (
	"strings"
	"time"
)

// Variant 商品规格实体(聚合根)
// DDD设计说明:
// 1. Variant是商品(Item)下实际可售卖的单元,如"蓝色/XL"
// 2. SKU作为业务唯一标识(数据库层保证唯一性)
// 3. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 4. 库存不在本实体上:每个规格对应stock聚合中的一条库存记录,
//    规格创建时初始化空库存,规格删除时级联删除库存
type Variant struct {
	ID        uint
	ItemID    uint   // 所属商品ID
	Name      string // 规格名称(如"蓝色/XL")
	SKU       string // 库存单位编码(业务唯一)
	Price     int64  // 价格(单位:分,1元=100分)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewVariant 创建新规格(工厂方法)
func NewVariant(itemID uint, name, sku string, price int64) *Variant {
	now := time.Now()
	return &Variant{
		ItemID:    itemID,
		Name:      strings.TrimSpace(name),
		SKU:       strings.TrimSpace(sku),
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate 校验规格基本属性
func (v *Variant) Validate() error {
	if v.ItemID == 0 {
		return ErrEmptyItemID
	}
	if strings.TrimSpace(v.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(v.SKU) == "" {
		return ErrEmptySKU
	}
	if v.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// UpdateInfo 更新规格信息(空名称不修改,负价格不修改)
func (v *Variant) UpdateInfo(name string, price int64) {
	if name != "" {
		v.Name = strings.TrimSpace(name)
	}
	if price >= 0 {
		v.Price = price
	}
	v.UpdatedAt = time.Now()
}
