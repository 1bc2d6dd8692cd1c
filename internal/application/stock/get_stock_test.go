package stock

import (
	"context"
	"testing"

	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// hitCache 固定命中的缓存替身
type hitCache struct {
	view *StockView
	sets int
}

func (c *hitCache) Get(context.Context, uint) (*StockView, error) { return c.view, nil }
func (c *hitCache) Set(_ context.Context, v *StockView) error {
	c.sets++
	return nil
}
func (c *hitCache) Invalidate(context.Context, uint) error { return nil }

// TestGetStock_CacheHit 测试缓存命中时不回源
func TestGetStock_CacheHit(t *testing.T) {
	store := newFakeStockStore()
	cache := &hitCache{view: &StockView{VariantID: 1, Available: 100, Allocated: 20, Sellable: 80, Version: 3}}
	uc := NewGetStockUseCase(&fakeVariantRepo{ids: map[uint]bool{1: true}}, store, cache, nil)

	view, err := uc.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("缓存命中不应失败: %v", err)
	}
	if view.Sellable != 80 {
		t.Errorf("应返回缓存快照sellable=80，实际%d", view.Sellable)
	}
}

// TestGetStock_CacheMiss_Backfill 测试缓存未命中时回源并回填
func TestGetStock_CacheMiss_Backfill(t *testing.T) {
	store := newFakeStockStore()
	store.seed(1, 50, 10)
	cache := &hitCache{view: nil}
	uc := NewGetStockUseCase(&fakeVariantRepo{ids: map[uint]bool{1: true}}, store, cache, nil)

	view, err := uc.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("回源查询不应失败: %v", err)
	}
	if view.Available != 50 || view.Allocated != 10 || view.Sellable != 40 {
		t.Errorf("视图应为available=50 allocated=10 sellable=40，实际%+v", view)
	}
	if cache.sets != 1 {
		t.Errorf("应回填缓存1次，实际%d次", cache.sets)
	}
}

// TestGetStock_NoRecord 测试规格存在但无库存记录时返回空视图
func TestGetStock_NoRecord(t *testing.T) {
	store := newFakeStockStore()
	uc := NewGetStockUseCase(&fakeVariantRepo{ids: map[uint]bool{1: true}}, store, nil, nil)

	view, err := uc.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("无记录应返回空视图而不是错误: %v", err)
	}
	if view.Available != 0 || view.Allocated != 0 || view.Sellable != 0 || view.Version != 0 {
		t.Errorf("应返回全零视图，实际%+v", view)
	}
}

// TestGetStock_VariantNotFound 测试规格不存在返回404
func TestGetStock_VariantNotFound(t *testing.T) {
	store := newFakeStockStore()
	uc := NewGetStockUseCase(&fakeVariantRepo{ids: map[uint]bool{}}, store, nil, nil)

	_, err := uc.Execute(context.Background(), 1)
	if apperrors.Code(err) != apperrors.ErrCodeVariantNotFound {
		t.Errorf("应返回规格不存在，实际: %v", err)
	}
}
