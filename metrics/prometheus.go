package metrics

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PrometheusCollector Prometheus 指标收集器实现.
type PrometheusCollector struct {
	namespace string

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	treeSize          *prometheus.GaugeVec
	treeHeight        *prometheus.GaugeVec

	// 自定义指标
	gauges map[string]*prometheus.GaugeVec
	mu     sync.RWMutex

	registry *prometheus.Registry
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus 创建 Prometheus 指标收集器.
func NewPrometheus(cfg *Config) (*PrometheusCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "gradebook"
	}

	// 独立注册表，避免与默认注册表冲突
	registry := prometheus.NewRegistry()

	c := &PrometheusCollector{
		namespace: namespace,
		gauges:    make(map[string]*prometheus.GaugeVec),
		registry:  registry,
	}

	c.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tree",
			Name:      "operations_total",
			Help:      "Total number of tree operations",
		},
		[]string{"tree", "op", "result"},
	)

	c.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tree",
			Name:      "operation_duration_seconds",
			Help:      "Tree operation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 10, 8),
		},
		[]string{"tree", "op"},
	)

	c.treeSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tree",
			Name:      "size",
			Help:      "Number of nodes in the tree",
		},
		[]string{"tree"},
	)

	c.treeHeight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tree",
			Name:      "height",
			Help:      "Height of the tree, -1 when empty",
		},
		[]string{"tree"},
	)

	for _, collector := range []prometheus.Collector{
		c.operationsTotal,
		c.operationDuration,
		c.treeSize,
		c.treeHeight,
	} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegisterMetric, err)
		}
	}

	return c, nil
}

// RecordOperation 记录一次树操作.
func (c *PrometheusCollector) RecordOperation(tree, op, result string, duration time.Duration) {
	c.operationsTotal.WithLabelValues(tree, op, result).Inc()
	c.operationDuration.WithLabelValues(tree, op).Observe(duration.Seconds())
}

// ObserveShape 更新树的节点数与高度.
func (c *PrometheusCollector) ObserveShape(tree string, size, height int) {
	c.treeSize.WithLabelValues(tree).Set(float64(size))
	c.treeHeight.WithLabelValues(tree).Set(float64(height))
}

// Gauge 设置自定义仪表盘，首次使用时注册.
//
// 使用示例:
//
//	collector.Gauge("grade_average", 3.16, map[string]string{"book": "primary"})
func (c *PrometheusCollector) Gauge(name string, value float64, labels map[string]string) {
	c.mu.RLock()
	gauge, exists := c.gauges[name]
	c.mu.RUnlock()

	labelNames, labelValues := extractLabels(labels)

	if !exists {
		c.mu.Lock()
		// 双重检查
		if gauge, exists = c.gauges[name]; !exists {
			gauge = prometheus.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: c.namespace,
					Name:      name,
					Help:      "Custom gauge: " + name,
				},
				labelNames,
			)
			if err := c.registry.Register(gauge); err == nil {
				c.gauges[name] = gauge
			} else {
				gauge = nil
			}
		}
		c.mu.Unlock()
	}

	if gauge != nil {
		gauge.WithLabelValues(labelValues...).Set(value)
	}
}

// extractLabels 按 key 排序提取 label 名称和值，保证每次调用顺序一致.
func extractLabels(labels map[string]string) ([]string, []string) {
	labelNames := make([]string, 0, len(labels))
	for k := range labels {
		labelNames = append(labelNames, k)
	}
	sort.Strings(labelNames)

	labelValues := make([]string, 0, len(labels))
	for _, k := range labelNames {
		labelValues = append(labelValues, labels[k])
	}
	return labelNames, labelValues
}

// Registry 返回底层注册表.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteText 以 Prometheus 文本格式写出当前所有指标.
func (c *PrometheusCollector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
