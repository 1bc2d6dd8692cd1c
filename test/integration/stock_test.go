package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 库存模块集成测试
//
// 测试场景覆盖:
// 1. 完整生命周期:盘点 → 预占 → 提交 → 释放 → 扣减
// 2. 业务拒绝:可售不足、超额提交/释放
// 3. 盘点覆盖清除未决预占
// 4. 库存流水追加
// 5. 并发预占不超卖(乐观锁)

// TestStockLifecycle 测试库存完整生命周期
func TestStockLifecycle(t *testing.T) {
	token := GetTestToken(t)
	itemID := CreateTestItem(t, token, "机械键盘")
	variantID := CreateTestVariant(t, token, itemID, "茶轴/87键")

	t.Run("盘点设置库存", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "set", 100)
		require.Equal(t, 0, resp.Code, "盘点失败: %s", resp.Message)

		var data StockData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, 100, data.Available)
		assert.Equal(t, 0, data.Allocated)
		assert.Equal(t, 100, data.Sellable)
	})

	t.Run("预占库存", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "reserve", 30)
		require.Equal(t, 0, resp.Code, "预占失败: %s", resp.Message)

		var data StockData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, 100, data.Available, "预占不减在库数量")
		assert.Equal(t, 30, data.Allocated)
		assert.Equal(t, 70, data.Sellable)
	})

	t.Run("提交预占", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "commit", 20)
		require.Equal(t, 0, resp.Code, "提交失败: %s", resp.Message)

		var data StockData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, 80, data.Available, "提交后货真正出库")
		assert.Equal(t, 10, data.Allocated)
		assert.Equal(t, 70, data.Sellable, "提交不改变可售数量")
	})

	t.Run("释放剩余预占", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "release", 10)
		require.Equal(t, 0, resp.Code, "释放失败: %s", resp.Message)

		var data StockData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, 80, data.Available)
		assert.Equal(t, 0, data.Allocated)
		assert.Equal(t, 80, data.Sellable, "释放后预占回到可售池")
	})

	t.Run("直接扣减", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "decrease", 5)
		require.Equal(t, 0, resp.Code, "扣减失败: %s", resp.Message)

		var data StockData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, 75, data.Available)
	})

	t.Run("补货", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "increase", 25)
		require.Equal(t, 0, resp.Code, "补货失败: %s", resp.Message)

		var data StockData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, 100, data.Available)
	})
}

// TestStockBusinessRejections 测试业务拒绝场景
func TestStockBusinessRejections(t *testing.T) {
	token := GetTestToken(t)
	itemID := CreateTestItem(t, token, "显示器")
	variantID := CreateTestVariant(t, token, itemID, "27寸/4K")

	// 初始:在库10,预占4,可售6
	require.Equal(t, 0, ApplyStock(t, token, variantID, "set", 10).Code)
	require.Equal(t, 0, ApplyStock(t, token, variantID, "reserve", 4).Code)

	t.Run("预占超过可售应拒绝", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "reserve", 7)
		assert.Equal(t, 40001, resp.Code, "可售不足应返回40001")
		assert.Contains(t, resp.Message, "可售", "错误信息应说明可售不足")
	})

	t.Run("扣减超过可售应拒绝", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "decrease", 7)
		assert.Equal(t, 40001, resp.Code, "可售不足应返回40001")
	})

	t.Run("提交超过已预占应拒绝", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "commit", 5)
		assert.Equal(t, 40002, resp.Code, "超额提交应返回40002")
	})

	t.Run("释放超过已预占应拒绝", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "release", 5)
		assert.Equal(t, 40002, resp.Code, "超额释放应返回40002")
	})

	t.Run("拒绝后状态不变", func(t *testing.T) {
		data := GetStockData(t, token, variantID)
		assert.Equal(t, 10, data.Available)
		assert.Equal(t, 4, data.Allocated)
	})

	t.Run("数量为0应被参数校验拒绝", func(t *testing.T) {
		resp := ApplyStock(t, token, variantID, "reserve", 0)
		assert.Equal(t, 40900, resp.Code, "数量0应返回参数错误")
	})

	t.Run("规格不存在应返回404", func(t *testing.T) {
		resp := ApplyStock(t, token, 99999999, "reserve", 1)
		assert.Equal(t, 40402, resp.Code, "规格不存在应返回40402")
	})
}

// TestStockSetClearsAllocations 测试盘点覆盖清除未决预占
func TestStockSetClearsAllocations(t *testing.T) {
	token := GetTestToken(t)
	itemID := CreateTestItem(t, token, "盘点商品")
	variantID := CreateTestVariant(t, token, itemID, "默认")

	require.Equal(t, 0, ApplyStock(t, token, variantID, "set", 50).Code)
	require.Equal(t, 0, ApplyStock(t, token, variantID, "reserve", 20).Code)

	// 盘点覆盖:在库设为30,未决预占清零
	resp := ApplyStock(t, token, variantID, "set", 30)
	require.Equal(t, 0, resp.Code, "盘点失败: %s", resp.Message)

	var data StockData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err)
	assert.Equal(t, 30, data.Available)
	assert.Equal(t, 0, data.Allocated, "盘点覆盖应清除未决预占")
	assert.Equal(t, 30, data.Sellable)
}

// TestStockMovements 测试库存流水
func TestStockMovements(t *testing.T) {
	token := GetTestToken(t)
	itemID := CreateTestItem(t, token, "流水商品")
	variantID := CreateTestVariant(t, token, itemID, "默认")

	require.Equal(t, 0, ApplyStock(t, token, variantID, "set", 100).Code)
	require.Equal(t, 0, ApplyStock(t, token, variantID, "reserve", 10).Code)
	require.Equal(t, 0, ApplyStock(t, token, variantID, "commit", 10).Code)

	resp := GetJSON(t, fmt.Sprintf("%s/variants/%d/stock/movements?page=1&page_size=10", BaseURL, variantID), token)
	require.Equal(t, 0, resp.Code, "流水查询失败: %s", resp.Message)

	var page MovementPage
	err := json.Unmarshal(resp.Data, &page)
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total, "应有3条流水")

	// 时间倒序:最新的commit在前
	assert.Equal(t, "commit", page.List[0].Op)
	assert.Equal(t, 90, page.List[0].AfterAvailable)
	assert.Equal(t, 0, page.List[0].AfterAllocated)
}

// TestStockConcurrentReserve 测试并发预占不超卖
//
// 在库10,20个并发请求各预占1:
// 恰好10个成功、10个因可售不足被拒,最终预占数量等于在库数量
func TestStockConcurrentReserve(t *testing.T) {
	token := GetTestToken(t)
	itemID := CreateTestItem(t, token, "秒杀商品")
	variantID := CreateTestVariant(t, token, itemID, "默认")

	require.Equal(t, 0, ApplyStock(t, token, variantID, "set", 10).Code)

	const workers = 20
	var succeeded, rejected int64
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// 服务端重试耗尽返回40920,客户端按约定重发
			for {
				resp := ApplyStock(t, token, variantID, "reserve", 1)
				switch resp.Code {
				case 0:
					atomic.AddInt64(&succeeded, 1)
				case 40001:
					atomic.AddInt64(&rejected, 1)
				case 40920:
					continue
				default:
					t.Errorf("意外的响应码: %d (%s)", resp.Code, resp.Message)
				}
				return
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), succeeded, "应恰好10个预占成功")
	assert.Equal(t, int64(10), rejected, "应恰好10个被拒")

	data := GetStockData(t, token, variantID)
	assert.Equal(t, 10, data.Available)
	assert.Equal(t, 10, data.Allocated)
	assert.Equal(t, 0, data.Sellable, "不允许超卖")
}
