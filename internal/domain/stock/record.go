package stock

import (
	"time"
)

// Record 库存记录实体(聚合根)
// DDD设计说明:
// 1. 每个商品规格(Variant)至多有一条库存记录,VariantID唯一
// 2. Available是在库物理数量,Allocated是其中被在途订单预占的部分
// 3. 可售数量 = Available - Allocated,新的预占/扣减只能消耗可售数量
// 4. Version是乐观锁版本号,每次持久化成功后+1,实体本身不修改它
//
// 不变式(每次流转前后都必须成立):
//
//	0 <= Allocated <= Available
type Record struct {
	VariantID uint  // 所属规格ID(唯一)
	Available int   // 在库数量(含已预占部分)
	Allocated int   // 已预占数量(已下单未支付)
	Version   int64 // 乐观锁版本号(由仓储层维护)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord 创建空库存记录(懒创建)
// 首次set/increase时才会落库,decrease等操作要求记录已存在
func NewRecord(variantID uint) *Record {
	now := time.Now()
	return &Record{
		VariantID: variantID,
		Available: 0,
		Allocated: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Sellable 可售数量
// 新的预占(Reserve)和扣减(Decrease)只能从这里消耗
func (r *Record) Sellable() int {
	return r.Available - r.Allocated
}

// Validate 校验不变式
// 每次流转后调用,防御性检查状态一致性
func (r *Record) Validate() error {
	if r.VariantID == 0 {
		return ErrInvalidVariantID
	}
	if r.Available < 0 {
		return ErrNegativeAvailable
	}
	if r.Allocated < 0 {
		return ErrNegativeAllocated
	}
	if r.Allocated > r.Available {
		return ErrAllocatedExceedsAvailable
	}
	return nil
}

// SetManual 设置库存(盘点覆盖)
// 业务规则:这是破坏性覆盖——以人工盘点结果为准,Allocated清零,
// 未决预占被直接丢弃(与源系统行为一致,流水日志中保留被丢弃的数量)
func (r *Record) SetManual(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	r.Available = qty
	r.Allocated = 0
	r.UpdatedAt = time.Now()
	return nil
}

// Increase 增加库存(补货)
func (r *Record) Increase(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	r.Available += qty
	r.UpdatedAt = time.Now()
	return nil
}

// Decrease 扣减库存(报损、盘亏)
// 业务规则:只能消耗可售数量,不能动已预占的部分
func (r *Record) Decrease(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if sellable := r.Sellable(); sellable < qty {
		return NewOutOfStockError(sellable, qty)
	}
	r.Available -= qty
	r.UpdatedAt = time.Now()
	return nil
}

// Reserve 预占库存(下单)
// 业务规则:与Decrease共用同一个准入检查(可售数量>=请求数量),
// 区别是Reserve只做标记,货还在库里
func (r *Record) Reserve(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if sellable := r.Sellable(); sellable < qty {
		return NewReserveOutOfStockError(sellable, qty)
	}
	r.Allocated += qty
	r.UpdatedAt = time.Now()
	return nil
}

// Commit 提交预占(支付成功)
// 业务规则:预占落定,货真正出库——Available和Allocated同时减少
func (r *Record) Commit(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if r.Allocated < qty {
		return NewCommitExceedsAllocatedError(r.Allocated, qty)
	}
	r.Available -= qty
	r.Allocated -= qty
	r.UpdatedAt = time.Now()
	return nil
}

// Release 释放预占(订单取消、支付超时)
// 业务规则:预占取消,货回到可售池,Available不变
func (r *Record) Release(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if r.Allocated < qty {
		return NewReleaseExceedsAllocatedError(r.Allocated, qty)
	}
	r.Allocated -= qty
	r.UpdatedAt = time.Now()
	return nil
}

// =========================================
// 库存流转操作枚举
// =========================================

// Op 库存流转操作类型
type Op string

const (
	OpSetManual Op = "set"      // 盘点覆盖
	OpIncrease  Op = "increase" // 补货
	OpDecrease  Op = "decrease" // 报损扣减
	OpReserve   Op = "reserve"  // 下单预占
	OpCommit    Op = "commit"   // 支付提交
	OpRelease   Op = "release"  // 取消释放
)

// RequiresExisting 该操作是否要求库存记录已存在
// set/increase支持懒创建,其余操作对不存在的记录返回ErrStockNotFound
func (op Op) RequiresExisting() bool {
	switch op {
	case OpSetManual, OpIncrease:
		return false
	default:
		return true
	}
}

// Valid 判断操作类型是否合法
func (op Op) Valid() bool {
	switch op {
	case OpSetManual, OpIncrease, OpDecrease, OpReserve, OpCommit, OpRelease:
		return true
	}
	return false
}

// Apply 按操作类型分发到对应的流转方法
// 纯计算,不做任何I/O;成功后再做一次不变式校验兜底
func (r *Record) Apply(op Op, qty int) error {
	var err error
	switch op {
	case OpSetManual:
		err = r.SetManual(qty)
	case OpIncrease:
		err = r.Increase(qty)
	case OpDecrease:
		err = r.Decrease(qty)
	case OpReserve:
		err = r.Reserve(qty)
	case OpCommit:
		err = r.Commit(qty)
	case OpRelease:
		err = r.Release(qty)
	default:
		return ErrUnknownOp
	}
	if err != nil {
		return err
	}
	return r.Validate()
}
