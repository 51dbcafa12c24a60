// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter：只增不减的累计值（请求总数、创建的出版社数）
//   - Gauge：可增可减的瞬时值（正在处理的请求数）
//   - Histogram：观测值的分布（请求耗时、图书保存耗时）
//
// # 目录服务的指标
//
//	http_requests_total{method,path,status}           HTTP请求总数
//	http_request_duration_seconds{method,path}        HTTP请求耗时
//	http_requests_in_progress                         正在处理的HTTP请求数
//	catalog_book_upserts_total{op,result}             图书创建/更新次数
//	catalog_book_upsert_duration_seconds{op}          图书创建/更新耗时
//	catalog_book_deletes_total{result}                图书删除次数
//	catalog_references_created_total{kind}           按名称新建的出版社/类型/作者数
//	catalog_author_links_total{action}                作者关联的增删次数
//	catalog_name_lock_wait_seconds                    等待名称锁的耗时
//	messages_published_total{exchange,routing_key}    事件发布次数
//	messages_publish_failed_total{routing_key}        事件发布失败次数
//
// # 使用示例
//
//	// 1. 启动时初始化（重复调用是安全的）
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录
//	start := time.Now()
//	defer func() {
//	    metrics.ObserveHistogramVec(metrics.BookUpsertDuration,
//	        map[string]string{"op": "create"}, time.Since(start).Seconds())
//	}()
//
// # 命名规范
//
//  1. Counter以`_total`结尾
//  2. Histogram以单位结尾（`_seconds`）
//  3. 标签只使用有限取值（op、kind、status），不要用book_id之类的高基数值
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 标签取值
const (
	OpCreate = "create"
	OpUpdate = "update"

	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultNotFound = "not_found"

	KindEditor = "editor"
	KindGenre  = "genre"
	KindAuthor = "author"

	ActionAdd    = "add"
	ActionRemove = "remove"
)

var (
	// once 保证只注册一次（重复注册到默认Registry会panic）
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method（GET/POST）、path（路由模板）、status（200/400）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 目录业务指标

	// BookUpsertsTotal 图书创建/更新次数
	// 标签：op（create/update）、result（success/failure/not_found）
	BookUpsertsTotal *prometheus.CounterVec

	// BookUpsertDuration 图书创建/更新耗时（包含关联对象解析和作者关联同步）
	BookUpsertDuration *prometheus.HistogramVec

	// BookDeletesTotal 图书删除次数
	// 标签：result（success/not_found/failure）
	BookDeletesTotal *prometheus.CounterVec

	// ReferencesCreatedTotal 保存图书时按名称新建的关联对象数
	// 标签：kind（editor/genre/author）
	ReferencesCreatedTotal *prometheus.CounterVec

	// AuthorLinksTotal 作者关联变更次数
	// 标签：action（add/remove）
	AuthorLinksTotal *prometheus.CounterVec

	// NameLockWaitDuration 获取名称锁的等待耗时
	NameLockWaitDuration prometheus.Histogram

	// 消息队列指标

	// MessagesPublishedTotal 事件发布总数
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesPublishFailedTotal 事件发布失败总数
	MessagesPublishFailedTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态(0关闭 1打开 2半开)
	// 标签：name（熔断器名称）
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	once.Do(register)
}

func register() {
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

	// 图书业务指标
	BookUpsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_book_upserts_total",
			Help: "图书创建/更新总数",
		},
		[]string{"op", "result"},
	)

	BookUpsertDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "catalog_book_upsert_duration_seconds",
			Help: "图书创建/更新耗时（秒）",
			// 一次保存涉及多次写库
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"op"},
	)

	BookDeletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_book_deletes_total",
			Help: "图书删除总数",
		},
		[]string{"result"},
	)

	ReferencesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_references_created_total",
			Help: "保存图书时新建的关联对象数",
		},
		[]string{"kind"},
	)

	AuthorLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_author_links_total",
			Help: "作者关联变更总数",
		},
		[]string{"action"},
	)

	NameLockWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_name_lock_wait_seconds",
			Help:    "获取名称锁的等待耗时（秒）",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
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

	MessagesPublishFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_publish_failed_total",
			Help: "消息发布失败总数",
		},
		[]string{"routing_key"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0关闭 1打开 2半开）",
		},
		[]string{"name"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// AddCounterVec 按数量累加CounterVec
func AddCounterVec(counter *prometheus.CounterVec, labels map[string]string, n int) {
	if n <= 0 {
		return
	}
	counter.With(labels).Add(float64(n))
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
