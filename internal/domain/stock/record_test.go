package stock

import (
	"testing"

	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// 构造处于指定状态的库存记录(测试辅助)
func newRecord(available, allocated int) *Record {
	r := NewRecord(1)
	r.Available = available
	r.Allocated = allocated
	return r
}

// TestNewRecord 测试懒创建的空记录
func TestNewRecord(t *testing.T) {
	r := NewRecord(42)
	if r.VariantID != 42 {
		t.Errorf("VariantID应为42，实际%d", r.VariantID)
	}
	if r.Available != 0 || r.Allocated != 0 {
		t.Errorf("新记录应为空库存，实际available=%d allocated=%d", r.Available, r.Allocated)
	}
	if r.Version != 0 {
		t.Errorf("新记录Version应为0，实际%d", r.Version)
	}
	if r.Sellable() != 0 {
		t.Errorf("新记录可售数量应为0，实际%d", r.Sellable())
	}
}

// TestSetManual 测试盘点覆盖：Available被覆盖，Allocated清零
func TestSetManual(t *testing.T) {
	r := newRecord(100, 30)

	if err := r.SetManual(50); err != nil {
		t.Fatalf("盘点覆盖不应失败: %v", err)
	}
	if r.Available != 50 {
		t.Errorf("Available应为50，实际%d", r.Available)
	}
	if r.Allocated != 0 {
		t.Errorf("盘点覆盖应清零Allocated，实际%d", r.Allocated)
	}
	if r.Sellable() != 50 {
		t.Errorf("可售数量应为50，实际%d", r.Sellable())
	}
}

// TestIncrease 测试补货：只增加Available，不影响预占
func TestIncrease(t *testing.T) {
	r := newRecord(100, 30)

	if err := r.Increase(20); err != nil {
		t.Fatalf("补货不应失败: %v", err)
	}
	if r.Available != 120 {
		t.Errorf("Available应为120，实际%d", r.Available)
	}
	if r.Allocated != 30 {
		t.Errorf("补货不应改变Allocated，实际%d", r.Allocated)
	}
}

// TestDecrease 测试扣减：只能消耗可售数量
func TestDecrease(t *testing.T) {
	r := newRecord(100, 30) // 可售70

	if err := r.Decrease(70); err != nil {
		t.Fatalf("扣减全部可售数量不应失败: %v", err)
	}
	if r.Available != 30 || r.Allocated != 30 {
		t.Errorf("扣减后应为available=30 allocated=30，实际available=%d allocated=%d",
			r.Available, r.Allocated)
	}
	if r.Sellable() != 0 {
		t.Errorf("扣减后可售数量应为0，实际%d", r.Sellable())
	}
}

// TestDecrease_OutOfStock 测试扣减超过可售数量：即使Available足够也要拒绝
func TestDecrease_OutOfStock(t *testing.T) {
	r := newRecord(100, 80) // 可售20

	err := r.Decrease(30)
	if !IsOutOfStock(err) {
		t.Fatalf("扣减超过可售数量应返回库存不足，实际: %v", err)
	}
	// 失败的流转不应有任何副作用
	if r.Available != 100 || r.Allocated != 80 {
		t.Errorf("失败的扣减不应修改状态，实际available=%d allocated=%d",
			r.Available, r.Allocated)
	}
}

// TestReserve 测试预占：Available不变，Allocated增加
func TestReserve(t *testing.T) {
	r := newRecord(100, 0)

	if err := r.Reserve(30); err != nil {
		t.Fatalf("预占不应失败: %v", err)
	}
	if r.Available != 100 {
		t.Errorf("预占不应改变Available，实际%d", r.Available)
	}
	if r.Allocated != 30 {
		t.Errorf("Allocated应为30，实际%d", r.Allocated)
	}
	if r.Sellable() != 70 {
		t.Errorf("可售数量应为70，实际%d", r.Sellable())
	}
}

// TestReserve_OutOfStock 测试预占与扣减共用可售数量准入检查
func TestReserve_OutOfStock(t *testing.T) {
	r := newRecord(100, 80) // 可售20

	err := r.Reserve(21)
	if !IsOutOfStock(err) {
		t.Fatalf("预占超过可售数量应返回库存不足，实际: %v", err)
	}

	// 边界：恰好等于可售数量应成功
	if err := r.Reserve(20); err != nil {
		t.Fatalf("预占恰好等于可售数量不应失败: %v", err)
	}
	if r.Allocated != 100 {
		t.Errorf("Allocated应为100，实际%d", r.Allocated)
	}
}

// TestCommit 测试提交预占：Available和Allocated同时减少
func TestCommit(t *testing.T) {
	r := newRecord(100, 30)

	if err := r.Commit(30); err != nil {
		t.Fatalf("提交不应失败: %v", err)
	}
	if r.Available != 70 || r.Allocated != 0 {
		t.Errorf("提交后应为available=70 allocated=0，实际available=%d allocated=%d",
			r.Available, r.Allocated)
	}
}

// TestCommit_ExceedsAllocated 测试提交超过已预占数量
func TestCommit_ExceedsAllocated(t *testing.T) {
	r := newRecord(100, 10)

	err := r.Commit(11)
	if !IsInvalidTransition(err) {
		t.Fatalf("提交超过已预占数量应返回非法流转，实际: %v", err)
	}
	if r.Available != 100 || r.Allocated != 10 {
		t.Errorf("失败的提交不应修改状态，实际available=%d allocated=%d",
			r.Available, r.Allocated)
	}
}

// TestRelease 测试释放预占：货回到可售池，Available不变
func TestRelease(t *testing.T) {
	r := newRecord(100, 30)

	if err := r.Release(30); err != nil {
		t.Fatalf("释放不应失败: %v", err)
	}
	if r.Available != 100 {
		t.Errorf("释放不应改变Available，实际%d", r.Available)
	}
	if r.Allocated != 0 {
		t.Errorf("Allocated应为0，实际%d", r.Allocated)
	}
	if r.Sellable() != 100 {
		t.Errorf("可售数量应回到100，实际%d", r.Sellable())
	}
}

// TestRelease_ExceedsAllocated 测试释放超过已预占数量
func TestRelease_ExceedsAllocated(t *testing.T) {
	r := newRecord(100, 10)

	err := r.Release(11)
	if !IsInvalidTransition(err) {
		t.Fatalf("释放超过已预占数量应返回非法流转，实际: %v", err)
	}
}

// TestReserveCommitRelease_Lifecycle 测试一次完整的订单生命周期
// 预占30 → 提交20（支付部分）→ 释放10（取消剩余）
func TestReserveCommitRelease_Lifecycle(t *testing.T) {
	r := newRecord(100, 0)

	if err := r.Reserve(30); err != nil {
		t.Fatalf("预占失败: %v", err)
	}
	if err := r.Commit(20); err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if err := r.Release(10); err != nil {
		t.Fatalf("释放失败: %v", err)
	}

	if r.Available != 80 || r.Allocated != 0 {
		t.Errorf("生命周期结束后应为available=80 allocated=0，实际available=%d allocated=%d",
			r.Available, r.Allocated)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("不变式校验失败: %v", err)
	}
}

// TestInvalidQuantity 测试所有流转都拒绝非正数量
func TestInvalidQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		r := newRecord(100, 50)
		ops := map[string]func(int) error{
			"SetManual": r.SetManual,
			"Increase":  r.Increase,
			"Decrease":  r.Decrease,
			"Reserve":   r.Reserve,
			"Commit":    r.Commit,
			"Release":   r.Release,
		}
		for name, fn := range ops {
			if err := fn(qty); err != ErrInvalidQuantity {
				t.Errorf("%s(%d)应返回ErrInvalidQuantity，实际: %v", name, qty, err)
			}
		}
	}
}

// TestApply 测试Apply分发器与直接调用等价
func TestApply(t *testing.T) {
	tests := []struct {
		op            Op
		qty           int
		wantAvailable int
		wantAllocated int
	}{
		{OpSetManual, 50, 50, 0},
		{OpIncrease, 20, 120, 30},
		{OpDecrease, 10, 90, 30},
		{OpReserve, 10, 100, 40},
		{OpCommit, 10, 90, 20},
		{OpRelease, 10, 100, 20},
	}

	for _, tt := range tests {
		r := newRecord(100, 30)
		if err := r.Apply(tt.op, tt.qty); err != nil {
			t.Errorf("Apply(%s, %d)不应失败: %v", tt.op, tt.qty, err)
			continue
		}
		if r.Available != tt.wantAvailable || r.Allocated != tt.wantAllocated {
			t.Errorf("Apply(%s, %d)后应为available=%d allocated=%d，实际available=%d allocated=%d",
				tt.op, tt.qty, tt.wantAvailable, tt.wantAllocated, r.Available, r.Allocated)
		}
	}
}

// TestApply_UnknownOp 测试未知操作类型
func TestApply_UnknownOp(t *testing.T) {
	r := newRecord(100, 0)
	if err := r.Apply(Op("unknown"), 1); err != ErrUnknownOp {
		t.Errorf("未知操作应返回ErrUnknownOp，实际: %v", err)
	}
}

// TestOp_RequiresExisting 测试懒创建规则：仅set和increase可作用于不存在的记录
func TestOp_RequiresExisting(t *testing.T) {
	lazy := []Op{OpSetManual, OpIncrease}
	strict := []Op{OpDecrease, OpReserve, OpCommit, OpRelease}

	for _, op := range lazy {
		if op.RequiresExisting() {
			t.Errorf("%s应支持懒创建", op)
		}
	}
	for _, op := range strict {
		if !op.RequiresExisting() {
			t.Errorf("%s应要求记录已存在", op)
		}
	}
}

// TestValidate 测试不变式校验
func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		available int
		allocated int
		wantErr   error
	}{
		{"正常状态", 100, 30, nil},
		{"空库存", 0, 0, nil},
		{"全部预占", 50, 50, nil},
		{"负库存", -1, 0, ErrNegativeAvailable},
		{"负预占", 10, -1, ErrNegativeAllocated},
		{"预占超过库存", 10, 11, ErrAllocatedExceedsAvailable},
	}

	for _, tt := range tests {
		r := newRecord(tt.available, tt.allocated)
		if err := r.Validate(); err != tt.wantErr {
			t.Errorf("%s: Validate()应返回%v，实际%v", tt.name, tt.wantErr, err)
		}
	}
}

// TestOutOfStockError_Message 测试库存不足错误携带具体数量
func TestOutOfStockError_Message(t *testing.T) {
	r := newRecord(100, 20) // 可售80

	err := r.Decrease(90)
	appErr := apperrors.GetAppError(err)
	if appErr.Code != apperrors.ErrCodeOutOfStock {
		t.Errorf("错误码应为%d，实际%d", apperrors.ErrCodeOutOfStock, appErr.Code)
	}
	want := "可售库存不足。可售: 80, 请求: 90"
	if appErr.Message != want {
		t.Errorf("错误消息应为%q，实际%q", want, appErr.Message)
	}
}
