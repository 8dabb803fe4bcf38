// Package metrics 提供有序树操作的 Prometheus 指标收集功能.
package metrics

import (
	"io"
	"time"
)

// 操作结果标签值.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultNoop     = "noop"
)

// Collector 指标收集器接口.
type Collector interface {
	// RecordOperation 记录一次树操作，tree 为树的名称，op 为操作名.
	RecordOperation(tree, op, result string, duration time.Duration)

	// ObserveShape 更新树的节点数与高度.
	ObserveShape(tree string, size, height int)

	// Gauge 设置自定义仪表盘.
	Gauge(name string, value float64, labels map[string]string)

	// WriteText 以 Prometheus 文本格式写出当前所有指标.
	WriteText(w io.Writer) error
}

// NewMetrics 创建指标收集器.
func NewMetrics(cfg *Config) (*PrometheusCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	return NewPrometheus(cfg)
}

// MustNewMetrics 创建指标收集器，失败时 panic.
func MustNewMetrics(cfg *Config) *PrometheusCollector {
	c, err := NewMetrics(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Nop 不记录任何内容的收集器.
type Nop struct{}

var _ Collector = Nop{}

func (Nop) RecordOperation(string, string, string, time.Duration) {}

func (Nop) ObserveShape(string, int, int) {}

func (Nop) Gauge(string, float64, map[string]string) {}

func (Nop) WriteText(io.Writer) error {
	return nil
}
