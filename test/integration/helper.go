package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 运行前提:服务已在本地启动(go run ./cmd/api),MySQL/Redis可用
// 配置中的API密钥哈希对应明文dev-api-key

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// TestAPIKey 开发环境API密钥明文
	TestAPIKey = "dev-api-key"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TokenData 凭证响应数据
type TokenData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ItemData 商品响应数据
type ItemData struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// VariantData 规格响应数据
type VariantData struct {
	ID     uint   `json:"id"`
	ItemID uint   `json:"item_id"`
	Name   string `json:"name"`
	SKU    string `json:"sku"`
	Price  int64  `json:"price"`
}

// StockData 库存响应数据
type StockData struct {
	VariantID uint `json:"variant_id"`
	Available int  `json:"available"`
	Allocated int  `json:"allocated"`
	Sellable  int  `json:"sellable"`
}

// MovementPage 库存流水分页数据
type MovementPage struct {
	List []struct {
		ID              uint   `json:"id"`
		VariantID       uint   `json:"variant_id"`
		Op              string `json:"op"`
		Quantity        int    `json:"quantity"`
		AfterAvailable  int    `json:"after_available"`
		AfterAllocated  int    `json:"after_allocated"`
		Remark          string `json:"remark"`
	} `json:"list"`
	Total int64 `json:"total"`
}

// doJSON 发送带JSON体的请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GetTestToken 用API密钥换取访问凭证
func GetTestToken(t *testing.T) string {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/auth/token", map[string]string{
		"client":  "integration-test",
		"api_key": TestAPIKey,
	}, "")
	require.Equal(t, 0, resp.Code, "获取凭证失败: %s", resp.Message)

	var data TokenData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析凭证响应失败")
	require.NotEmpty(t, data.AccessToken, "AccessToken不应为空")

	return data.AccessToken
}

// GenerateTestSKU 生成唯一的测试SKU
// 时间戳保证测试重复运行时不撞SKU唯一索引
func GenerateTestSKU(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// GenerateTestDescription 生成唯一的商品描述
// 描述有唯一索引,同样需要时间戳去重
func GenerateTestDescription(prefix string) string {
	return fmt.Sprintf("%s(集成测试-%d)", prefix, time.Now().UnixNano())
}

// CreateTestItem 创建测试商品并返回ID
func CreateTestItem(t *testing.T, token, name string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/items", map[string]interface{}{
		"name":        name,
		"description": GenerateTestDescription(name),
		"category":    "integration",
	}, token)
	require.Equal(t, 0, resp.Code, "创建商品失败: %s", resp.Message)

	var data ItemData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析商品响应失败")
	require.NotZero(t, data.ID, "商品ID应该大于0")

	return data.ID
}

// CreateTestVariant 在指定商品下创建测试规格并返回ID
// 规格创建会同步初始化一条空库存记录
func CreateTestVariant(t *testing.T, token string, itemID uint, name string) uint {
	t.Helper()

	resp := PostJSON(t, fmt.Sprintf("%s/items/%d/variants", BaseURL, itemID), map[string]interface{}{
		"name":  name,
		"sku":   GenerateTestSKU("SKU"),
		"price": 1990,
	}, token)
	require.Equal(t, 0, resp.Code, "创建规格失败: %s", resp.Message)

	var data VariantData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析规格响应失败")
	require.NotZero(t, data.ID, "规格ID应该大于0")

	return data.ID
}

// GetStockData 查询库存并解析数据
func GetStockData(t *testing.T, token string, variantID uint) *StockData {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/variants/%d/stock", BaseURL, variantID), token)
	require.Equal(t, 0, resp.Code, "查询库存失败: %s", resp.Message)

	var data StockData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析库存响应失败")

	return &data
}

// ApplyStock 执行一次库存流转(set用PUT,其余用POST)
func ApplyStock(t *testing.T, token string, variantID uint, op string, quantity int) *Response {
	t.Helper()

	body := map[string]int{"quantity": quantity}
	if op == "set" {
		return PutJSON(t, fmt.Sprintf("%s/variants/%d/stock", BaseURL, variantID), body, token)
	}
	return PostJSON(t, fmt.Sprintf("%s/variants/%d/stock/%s", BaseURL, variantID, op), body, token)
}
