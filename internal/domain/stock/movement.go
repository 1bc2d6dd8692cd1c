package stock

import (
	"time"
)

// Movement 库存流水(审计日志)
// 设计说明:
// 1. 每次流转成功后追加一条流水,记录流转前后的完整快照
// 2. 流水只增不改,用于对账和排障(如:盘点覆盖丢弃了多少预占)
// 3. 与库存记录在同一事务内写入,保证状态与流水严格一致
type Movement struct {
	ID              uint
	VariantID       uint
	Op              Op     // 流转操作类型
	Quantity        int    // 请求数量
	BeforeAvailable int    // 流转前在库数量
	BeforeAllocated int    // 流转前预占数量
	AfterAvailable  int    // 流转后在库数量
	AfterAllocated  int    // 流转后预占数量
	Remark          string // 备注(如盘点覆盖丢弃的预占数量)
	CreatedAt       time.Time
}

// NewMovement 创建库存流水
// before/after分别是流转前后的记录快照
func NewMovement(op Op, qty int, before, after *Record, remark string) *Movement {
	return &Movement{
		VariantID:       after.VariantID,
		Op:              op,
		Quantity:        qty,
		BeforeAvailable: before.Available,
		BeforeAllocated: before.Allocated,
		AfterAvailable:  after.Available,
		AfterAllocated:  after.Allocated,
		Remark:          remark,
		CreatedAt:       time.Now(),
	}
}
