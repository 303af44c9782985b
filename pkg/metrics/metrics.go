package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry 应用独立的指标注册表（不使用全局 DefaultRegisterer，便于测试隔离）
var Registry = prometheus.NewRegistry()

var (
	// AuditWriteFailures 操作日志写入失败次数，非零即代表审计链存在缺口
	AuditWriteFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventra",
		Name:      "audit_write_failures_total",
		Help:      "Activity log appends that failed after the domain mutation committed.",
	}, []string{"entity_type"})

	// SerialNumbersAllocated 已分配的资产编号数量
	SerialNumbersAllocated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventra",
		Name:      "serial_numbers_allocated_total",
		Help:      "Item serial numbers allocated per category.",
	}, []string{"category"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventra",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inventra",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		AuditWriteFailures,
		SerialNumbersAllocated,
		httpRequests,
		httpLatency,
	)
}

// ObserveHTTP 记录一次 HTTP 请求
func ObserveHTTP(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}

// Handler 返回 /metrics 处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
