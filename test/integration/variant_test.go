package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 规格模块集成测试
//
// 测试场景覆盖:
// 1. 规格创建(挂在商品下,同步初始化库存记录)
// 2. SKU唯一性约束
// 3. 查询、更新(SKU不可变)、删除

// TestVariantCreate 测试规格创建
func TestVariantCreate(t *testing.T) {
	token := GetTestToken(t)
	itemID := CreateTestItem(t, token, "纯棉T恤")

	t.Run("正常创建规格", func(t *testing.T) {
		sku := GenerateTestSKU("TS-BLU-XL")
		resp := PostJSON(t, fmt.Sprintf("%s/items/%d/variants", BaseURL, itemID), map[string]interface{}{
			"name":  "蓝色/XL",
			"sku":   sku,
			"price": 5900,
		}, token)

		require.Equal(t, 0, resp.Code, "创建应该成功: %s", resp.Message)

		var data VariantData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.ID, "规格ID应该大于0")
		assert.Equal(t, itemID, data.ItemID)
		assert.Equal(t, sku, data.SKU)
		assert.Equal(t, int64(5900), data.Price)

		// 创建规格的同时应初始化一条全零库存记录
		stock := GetStockData(t, token, data.ID)
		assert.Equal(t, 0, stock.Available, "新规格在库数量应为0")
		assert.Equal(t, 0, stock.Allocated, "新规格预占数量应为0")
	})

	t.Run("商品不存在应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/items/99999999/variants", map[string]interface{}{
			"name":  "无主规格",
			"sku":   GenerateTestSKU("ORPHAN"),
			"price": 100,
		}, token)

		assert.Equal(t, 40401, resp.Code, "商品不存在应返回40401")
	})

	t.Run("SKU重复应失败", func(t *testing.T) {
		sku := GenerateTestSKU("DUP")
		req := map[string]interface{}{
			"name":  "规格A",
			"sku":   sku,
			"price": 100,
		}

		resp1 := PostJSON(t, fmt.Sprintf("%s/items/%d/variants", BaseURL, itemID), req, token)
		require.Equal(t, 0, resp1.Code, "第一次创建应该成功")

		req["name"] = "规格B"
		resp2 := PostJSON(t, fmt.Sprintf("%s/items/%d/variants", BaseURL, itemID), req, token)
		assert.Equal(t, 40003, resp2.Code, "重复SKU应返回40003")
	})
}

// TestVariantQueryAndUpdate 测试规格查询与更新
func TestVariantQueryAndUpdate(t *testing.T) {
	token := GetTestToken(t)
	itemID := CreateTestItem(t, token, "帆布鞋")
	variantID := CreateTestVariant(t, token, itemID, "白色/42")

	t.Run("按ID查询", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/variants/%d", BaseURL, variantID), token)
		require.Equal(t, 0, resp.Code, "查询失败: %s", resp.Message)

		var data VariantData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, variantID, data.ID)
		assert.Equal(t, "白色/42", data.Name)
	})

	t.Run("商品下规格列表", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/items/%d/variants", BaseURL, itemID), token)
		require.Equal(t, 0, resp.Code, "列表查询失败: %s", resp.Message)

		var data struct {
			List []VariantData `json:"list"`
		}
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Len(t, data.List, 1, "应只有一个规格")
	})

	t.Run("更新价格", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/variants/%d", BaseURL, variantID), map[string]interface{}{
			"price": 8800,
		}, token)
		require.Equal(t, 0, resp.Code, "更新失败: %s", resp.Message)

		var data VariantData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, int64(8800), data.Price, "价格应已更新")
		assert.Equal(t, "白色/42", data.Name, "未提交的字段不应变化")
	})

	t.Run("查询不存在的规格", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/variants/99999999", token)
		assert.Equal(t, 40402, resp.Code, "不存在的规格应返回40402")
	})
}

// TestVariantDelete 测试规格删除(库存记录一并清理)
func TestVariantDelete(t *testing.T) {
	token := GetTestToken(t)
	itemID := CreateTestItem(t, token, "待删规格商品")
	variantID := CreateTestVariant(t, token, itemID, "默认")

	resp := DeleteJSON(t, fmt.Sprintf("%s/variants/%d", BaseURL, variantID), token)
	require.Equal(t, 0, resp.Code, "删除失败: %s", resp.Message)

	resp = GetJSON(t, fmt.Sprintf("%s/variants/%d", BaseURL, variantID), token)
	assert.Equal(t, 40402, resp.Code, "删除后规格应返回40402")

	// 库存查询同样404(规格已不存在)
	resp = GetJSON(t, fmt.Sprintf("%s/variants/%d/stock", BaseURL, variantID), token)
	assert.Equal(t, 40402, resp.Code, "删除后库存查询应返回40402")
}
