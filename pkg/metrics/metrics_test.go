package metrics

import "testing"

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if StockTransitionsTotal == nil {
		t.Error("StockTransitionsTotal未初始化")
	}
	if StockConflictRetriesTotal == nil {
		t.Error("StockConflictRetriesTotal未初始化")
	}

	// 重复调用不应panic（promauto重复注册会panic，靠initialized标记保护）
	InitMetrics()

	// 带标签的计数器可正常打点
	StockTransitionsTotal.WithLabelValues("reserve", "success").Inc()
	HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/variants/:id/stock/reserve", "2xx").Inc()
}
