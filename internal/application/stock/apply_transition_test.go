package stock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/domain/variant"
	apperrors "github.com/checkproof/inventory/pkg/errors"
	"github.com/checkproof/inventory/pkg/retry"
)

// =========================================
// 测试替身:不连数据库验证流转的并发语义
// =========================================

// fakeTxManager 直通事务管理器(单测中无真实事务)
type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeVariantRepo 内存规格仓储(只实现存在性检查,其余方法测试不经过)
type fakeVariantRepo struct {
	ids map[uint]bool
}

func (f *fakeVariantRepo) FindByID(_ context.Context, id uint) (*variant.Variant, error) {
	if f.ids[id] {
		return &variant.Variant{ID: id, ItemID: 1, Name: "默认规格", SKU: fmt.Sprintf("SKU-%d", id)}, nil
	}
	return nil, variant.ErrVariantNotFound
}

func (f *fakeVariantRepo) Create(context.Context, *variant.Variant) error { return nil }
func (f *fakeVariantRepo) FindBySKU(context.Context, string) (*variant.Variant, error) {
	return nil, variant.ErrVariantNotFound
}
func (f *fakeVariantRepo) ListByItemID(context.Context, uint) ([]*variant.Variant, error) {
	return nil, nil
}
func (f *fakeVariantRepo) Update(context.Context, *variant.Variant) error { return nil }
func (f *fakeVariantRepo) Delete(context.Context, uint) error             { return nil }
func (f *fakeVariantRepo) DeleteByItemID(context.Context, uint) error     { return nil }

// fakeStockStore 内存库存仓储,模拟乐观锁语义:
// - Version==0视为插入,已存在则冲突
// - Version>0比对存量版本,不一致则冲突
// - conflictsLeft>0时强制返回冲突(注入争用)
type fakeStockStore struct {
	mu            sync.Mutex
	records       map[uint]*stock.Record
	saves         int
	conflictsLeft int
}

func newFakeStockStore() *fakeStockStore {
	return &fakeStockStore{records: make(map[uint]*stock.Record)}
}

func (f *fakeStockStore) GetByVariantID(_ context.Context, variantID uint) (*stock.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[variantID]
	if !ok {
		return nil, stock.ErrStockNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStockStore) Save(_ context.Context, rec *stock.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++

	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return stock.ErrVersionConflict
	}

	stored, ok := f.records[rec.VariantID]
	if rec.Version == 0 {
		// 插入:并发创建撞唯一键 → 冲突
		if ok {
			return stock.ErrVersionConflict
		}
	} else if !ok || stored.Version != rec.Version {
		// 条件更新影响行数为0 → 冲突
		return stock.ErrVersionConflict
	}

	rec.Version++
	cp := *rec
	f.records[rec.VariantID] = &cp
	return nil
}

func (f *fakeStockStore) DeleteByVariantID(_ context.Context, variantID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, variantID)
	return nil
}

func (f *fakeStockStore) ListLowStock(context.Context, int) ([]*stock.Record, error) {
	return nil, nil
}

// seed 预置一条库存记录(version=1)
func (f *fakeStockStore) seed(variantID uint, available, allocated int) {
	f.records[variantID] = &stock.Record{
		VariantID: variantID,
		Available: available,
		Allocated: allocated,
		Version:   1,
	}
}

// fakeMovementRepo 内存流水仓储
type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*stock.Movement
}

func (f *fakeMovementRepo) Create(_ context.Context, mv *stock.Movement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements = append(f.movements, mv)
	return nil
}

func (f *fakeMovementRepo) ListByVariantID(context.Context, uint, int, int) ([]*stock.Movement, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.movements, int64(len(f.movements)), nil
}

// fakeCache 记录失效调用的缓存替身
type fakeCache struct {
	mu          sync.Mutex
	invalidated []uint
}

func (f *fakeCache) Get(context.Context, uint) (*StockView, error) { return nil, nil }
func (f *fakeCache) Set(context.Context, *StockView) error         { return nil }
func (f *fakeCache) Invalidate(_ context.Context, variantID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, variantID)
	return nil
}

// fakePublisher 记录已发布事件的替身
type fakePublisher struct {
	mu      sync.Mutex
	changed []*StockChangedEvent
	low     []*StockLowEvent
}

func (f *fakePublisher) PublishStockChanged(_ context.Context, ev *StockChangedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changed = append(f.changed, ev)
	return nil
}

func (f *fakePublisher) PublishStockLow(_ context.Context, ev *StockLowEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.low = append(f.low, ev)
	return nil
}

// =========================================
// 测试脚手架
// =========================================

type fixture struct {
	store     *fakeStockStore
	movements *fakeMovementRepo
	cache     *fakeCache
	publisher *fakePublisher
	uc        *ApplyTransitionUseCase
}

// 测试用快速重试策略(退避1ms,避免拖慢测试)
func testPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 5, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func newFixture(lowThreshold int) *fixture {
	f := &fixture{
		store:     newFakeStockStore(),
		movements: &fakeMovementRepo{},
		cache:     &fakeCache{},
		publisher: &fakePublisher{},
	}
	f.uc = NewApplyTransitionUseCase(
		&fakeVariantRepo{ids: map[uint]bool{1: true}},
		f.store,
		f.movements,
		fakeTxManager{},
		f.cache,
		f.publisher,
		testPolicy(),
		lowThreshold,
		nil,
	)
	return f
}

// =========================================
// 用例测试
// =========================================

// TestApplyTransition_SetManual_LazyCreate 测试首次盘点时记录懒创建
func TestApplyTransition_SetManual_LazyCreate(t *testing.T) {
	f := newFixture(0)

	view, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.OpSetManual, Quantity: 50,
	})
	if err != nil {
		t.Fatalf("首次盘点不应失败: %v", err)
	}
	if view.Available != 50 || view.Allocated != 0 || view.Sellable != 50 {
		t.Errorf("视图应为available=50 allocated=0 sellable=50，实际%+v", view)
	}
	if view.Version != 1 {
		t.Errorf("新记录保存后Version应为1，实际%d", view.Version)
	}
	if len(f.movements.movements) != 1 {
		t.Fatalf("应写入1条流水，实际%d条", len(f.movements.movements))
	}
	mv := f.movements.movements[0]
	if mv.Op != stock.OpSetManual || mv.BeforeAvailable != 0 || mv.AfterAvailable != 50 {
		t.Errorf("流水快照不正确: %+v", mv)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != 1 {
		t.Errorf("应失效规格1的缓存，实际%v", f.cache.invalidated)
	}
	if len(f.publisher.changed) != 1 {
		t.Errorf("应发布1条库存变更事件，实际%d条", len(f.publisher.changed))
	}
}

// TestApplyTransition_Increase_LazyCreate 测试increase同样支持懒创建
func TestApplyTransition_Increase_LazyCreate(t *testing.T) {
	f := newFixture(0)

	view, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.OpIncrease, Quantity: 30,
	})
	if err != nil {
		t.Fatalf("首次补货不应失败: %v", err)
	}
	if view.Available != 30 || view.Allocated != 0 {
		t.Errorf("视图应为available=30 allocated=0，实际%+v", view)
	}
}

// TestApplyTransition_RequiresExisting 测试decrease等操作对不存在的记录返回404
func TestApplyTransition_RequiresExisting(t *testing.T) {
	f := newFixture(0)

	for _, op := range []stock.Op{stock.OpDecrease, stock.OpReserve, stock.OpCommit, stock.OpRelease} {
		_, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
			VariantID: 1, Op: op, Quantity: 1,
		})
		if apperrors.Code(err) != apperrors.ErrCodeStockNotFound {
			t.Errorf("%s作用于不存在的记录应返回库存记录不存在，实际: %v", op, err)
		}
	}
	if f.store.saves != 0 {
		t.Errorf("不应有任何保存操作，实际%d次", f.store.saves)
	}
}

// TestApplyTransition_VariantNotFound 测试规格不存在直接404
func TestApplyTransition_VariantNotFound(t *testing.T) {
	f := newFixture(0)

	_, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 99, Op: stock.OpIncrease, Quantity: 1,
	})
	if apperrors.Code(err) != apperrors.ErrCodeVariantNotFound {
		t.Errorf("应返回规格不存在，实际: %v", err)
	}
}

// TestApplyTransition_BusinessRejection_NoRetry 测试业务拒绝不触发重试
// 库存不足重读也不会变,重试只会浪费资源
func TestApplyTransition_BusinessRejection_NoRetry(t *testing.T) {
	f := newFixture(0)
	f.store.seed(1, 100, 80) // 可售20

	_, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.OpDecrease, Quantity: 30,
	})
	if apperrors.Code(err) != apperrors.ErrCodeOutOfStock {
		t.Fatalf("应返回库存不足，实际: %v", err)
	}
	if f.store.saves != 0 {
		t.Errorf("业务拒绝发生在保存之前，不应有保存操作，实际%d次", f.store.saves)
	}
	if len(f.movements.movements) != 0 {
		t.Errorf("失败的流转不应写流水，实际%d条", len(f.movements.movements))
	}
	if len(f.publisher.changed) != 0 {
		t.Errorf("失败的流转不应发布事件，实际%d条", len(f.publisher.changed))
	}
}

// TestApplyTransition_ConflictRetry 测试版本冲突自动重试后成功
func TestApplyTransition_ConflictRetry(t *testing.T) {
	f := newFixture(0)
	f.store.seed(1, 100, 0)
	f.store.conflictsLeft = 2 // 前2次保存强制冲突

	view, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.OpReserve, Quantity: 10,
	})
	if err != nil {
		t.Fatalf("冲突重试后应成功: %v", err)
	}
	if view.Allocated != 10 {
		t.Errorf("Allocated应为10，实际%d", view.Allocated)
	}
	if f.store.saves != 3 {
		t.Errorf("应保存3次(2次冲突+1次成功)，实际%d次", f.store.saves)
	}
	// 冲突的尝试不应留下流水
	if len(f.movements.movements) != 1 {
		t.Errorf("应只有成功那次的1条流水，实际%d条", len(f.movements.movements))
	}
}

// TestApplyTransition_ConflictExhausted 测试重试耗尽后返回Conflict
func TestApplyTransition_ConflictExhausted(t *testing.T) {
	f := newFixture(0)
	f.store.seed(1, 100, 0)
	f.store.conflictsLeft = 100 // 永远冲突

	_, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.OpReserve, Quantity: 10,
	})
	if apperrors.Code(err) != apperrors.ErrCodeConflict {
		t.Fatalf("重试耗尽应返回并发冲突，实际: %v", err)
	}
	if f.store.saves != testPolicy().MaxAttempts {
		t.Errorf("应尝试%d次，实际%d次", testPolicy().MaxAttempts, f.store.saves)
	}
}

// TestApplyTransition_InvalidRequest 测试参数校验
func TestApplyTransition_InvalidRequest(t *testing.T) {
	f := newFixture(0)

	if _, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.Op("unknown"), Quantity: 1,
	}); err != stock.ErrUnknownOp {
		t.Errorf("未知操作应返回ErrUnknownOp，实际: %v", err)
	}

	if _, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.OpIncrease, Quantity: 0,
	}); err != stock.ErrInvalidQuantity {
		t.Errorf("数量为0应返回ErrInvalidQuantity，实际: %v", err)
	}
}

// TestApplyTransition_SetManualRemark 测试盘点覆盖把丢弃的预占记入流水备注
func TestApplyTransition_SetManualRemark(t *testing.T) {
	f := newFixture(0)
	f.store.seed(1, 100, 30)

	if _, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.OpSetManual, Quantity: 50,
	}); err != nil {
		t.Fatalf("盘点覆盖不应失败: %v", err)
	}

	mv := f.movements.movements[0]
	want := "盘点覆盖丢弃预占: 30"
	if mv.Remark != want {
		t.Errorf("流水备注应为%q，实际%q", want, mv.Remark)
	}
	if mv.AfterAllocated != 0 {
		t.Errorf("盘点覆盖后Allocated应为0，实际%d", mv.AfterAllocated)
	}
}

// TestApplyTransition_LowStockEvent 测试可售数量降到阈值以下时发布告警
func TestApplyTransition_LowStockEvent(t *testing.T) {
	f := newFixture(5)
	f.store.seed(1, 10, 0)

	if _, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
		VariantID: 1, Op: stock.OpReserve, Quantity: 6,
	}); err != nil {
		t.Fatalf("预占不应失败: %v", err)
	}

	if len(f.publisher.low) != 1 {
		t.Fatalf("可售4<阈值5，应发布1条低库存告警，实际%d条", len(f.publisher.low))
	}
	ev := f.publisher.low[0]
	if ev.Sellable != 4 || ev.Threshold != 5 {
		t.Errorf("告警事件应为sellable=4 threshold=5，实际%+v", ev)
	}
	if ev.EventID == "" {
		t.Error("事件应携带EventID")
	}
}

// TestApplyTransition_Concurrent 测试真实并发下不超卖
// 可售10,20个goroutine各预占1:恰好10个成功,其余库存不足
func TestApplyTransition_Concurrent(t *testing.T) {
	f := newFixture(0)
	f.store.seed(1, 10, 0)
	// 并发争用下5次尝试可能耗尽,放宽到50次保证结果确定
	f.uc.policy = retry.Policy{MaxAttempts: 50, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	success, outOfStock := 0, 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), ApplyTransitionRequest{
				VariantID: 1, Op: stock.OpReserve, Quantity: 1,
			})
			mu.Lock()
			defer mu.Unlock()
			switch apperrors.Code(err) {
			case 0:
				success++
			case apperrors.ErrCodeOutOfStock:
				outOfStock++
			default:
				t.Errorf("意外错误: %v", err)
			}
		}()
	}
	wg.Wait()

	if success != 10 || outOfStock != 10 {
		t.Errorf("应恰好10个成功10个库存不足，实际成功%d 库存不足%d", success, outOfStock)
	}

	final, err := f.store.GetByVariantID(context.Background(), 1)
	if err != nil {
		t.Fatalf("查询最终状态失败: %v", err)
	}
	if final.Available != 10 || final.Allocated != 10 || final.Sellable() != 0 {
		t.Errorf("最终状态应为available=10 allocated=10，实际available=%d allocated=%d",
			final.Available, final.Allocated)
	}
	if err := final.Validate(); err != nil {
		t.Errorf("最终状态不变式校验失败: %v", err)
	}
}
