// Package metrics 暴露 Prometheus 指标：HTTP 请求量/延迟与动态计价结果。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dynamic_pricing"

// Metrics 服务指标集合，nil 接收者上的方法均为空操作
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	pricingCalculations *prometheus.CounterVec
	gatherer            prometheus.Gatherer
}

// NewRegistry 创建带 Go 运行时与进程指标的注册表
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetrics 在 reg 上注册全部指标
func NewMetrics(reg *prometheus.Registry) *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Counts HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	pricingCalculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_calculations_total",
		Help:      "Dynamic price calculations by result and item type.",
	}, []string{"result", "item_type"})

	reg.MustRegister(httpRequests, httpDuration, pricingCalculations)

	return &Metrics{
		httpRequests:        httpRequests,
		httpDuration:        httpDuration,
		pricingCalculations: pricingCalculations,
		gatherer:            reg,
	}
}

// ObserveHTTPRequest 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	methodLabel := sanitizeLabel(method)
	routeLabel := sanitizeLabel(route)
	m.httpRequests.WithLabelValues(methodLabel, routeLabel, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(methodLabel, routeLabel).Observe(duration.Seconds())
}

// RecordCalculation 记录动态计价结果
func (m *Metrics) RecordCalculation(result, itemType string) {
	if m == nil {
		return
	}
	m.pricingCalculations.WithLabelValues(sanitizeLabel(result), sanitizeItemType(itemType)).Inc()
}

// Middleware 按路由模板统计请求，未匹配路由统一记为 unmatched
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func sanitizeItemType(val string) string {
	if val == "" {
		return "any"
	}
	return val
}

func sanitizeLabel(val string) string {
	if val == "" {
		return "unknown"
	}
	return val
}
