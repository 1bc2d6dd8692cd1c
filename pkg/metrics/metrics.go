// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型速查：
// - Counter（计数器）：只增不减，如http_requests_total、stock_transitions_total
// - Gauge（仪表盘）：可增可减的瞬时值，如http_requests_in_progress
// - Histogram（直方图）：观测值分布，自动计算P50/P90/P99，如请求耗时
//
// 命名规范：
// - Counter以_total结尾；Histogram以单位结尾（_seconds）
// - 用标签区分维度（method、path、op、result），避免高基数标签（如variant_id）
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//	metrics.StockTransitionsTotal.WithLabelValues("reserve", "success").Inc()
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/items）、status（业务码分类）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 库存业务指标

	// StockTransitionsTotal 库存流转总数（Counter）
	// 标签：op（set/increase/decrease/reserve/commit/release）、
	//       result（success/rejected/conflict）
	// rejected=业务规则拒绝（库存不足等），conflict=乐观锁重试耗尽
	StockTransitionsTotal *prometheus.CounterVec

	// StockTransitionDuration 库存流转耗时（Histogram）
	// 含乐观锁重试在内的完整耗时
	StockTransitionDuration prometheus.Histogram

	// StockConflictRetriesTotal 乐观锁冲突重试总数（Counter）
	// 每发生一次版本冲突计1，监控争用程度
	StockConflictRetriesTotal prometheus.Counter

	// LowStockAlertsTotal 低库存告警总数（Counter）
	LowStockAlertsTotal prometheus.Counter

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数（Counter）
	// 标签：queue（队列名称）、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，注册所有指标到全局Registry
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets按业务耗时范围定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 库存业务指标
	StockTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_transitions_total",
			Help: "库存流转总数",
		},
		[]string{"op", "result"},
	)

	StockTransitionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "stock_transition_duration_seconds",
			Help: "库存流转耗时（秒），含乐观锁重试",
			// 单次流转是一次读改写，通常在百毫秒内完成
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	StockConflictRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_conflict_retries_total",
			Help: "乐观锁冲突重试总数",
		},
	)

	LowStockAlertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "low_stock_alerts_total",
			Help: "低库存告警总数",
		},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)
}
