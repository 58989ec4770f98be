package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 设计说明：
// 使用Prometheus收集HTTP层的基础指标
// 1. 请求计数器：按方法、路由、状态码区分
// 2. 延迟直方图：观察P95/P99响应时间
// 标签使用Gin的FullPath（路由模板，如/api/v1/books/:id），避免高基数问题

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookreview",
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookreview",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求处理耗时（秒）",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

// ObserveRequest 记录一次HTTP请求
func ObserveRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler 返回Prometheus的/metrics处理器
func Handler() http.Handler {
	return promhttp.Handler()
}
