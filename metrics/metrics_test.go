package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_NilConfig(t *testing.T) {
	c, err := NewMetrics(nil)

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestNewMetrics_Success(t *testing.T) {
	c, err := NewMetrics(&Config{Namespace: "test"})

	require.NoError(t, err)
	assert.IsType(t, &PrometheusCollector{}, c)
}

func TestMustNewMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.NotNil(t, MustNewMetrics(DefaultConfig()))
	})
	assert.Panics(t, func() {
		MustNewMetrics(nil)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gradebook", cfg.Namespace)
	assert.False(t, cfg.Enabled)
}

func TestRecordOperation(t *testing.T) {
	c := MustNewMetrics(DefaultConfig())

	c.RecordOperation("primary", "insert", ResultOK, time.Microsecond)
	c.RecordOperation("primary", "insert", ResultOK, time.Microsecond)
	c.RecordOperation("primary", "search", ResultNotFound, time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operationsTotal.WithLabelValues("primary", "insert", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operationsTotal.WithLabelValues("primary", "search", ResultNotFound)))
	assert.Equal(t, 2, testutil.CollectAndCount(c.operationDuration))
}

func TestObserveShape(t *testing.T) {
	c := MustNewMetrics(DefaultConfig())

	c.ObserveShape("copy", 5, 3)
	assert.Equal(t, 5.0, testutil.ToFloat64(c.treeSize.WithLabelValues("copy")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.treeHeight.WithLabelValues("copy")))

	c.ObserveShape("copy", 0, -1)
	assert.Equal(t, -1.0, testutil.ToFloat64(c.treeHeight.WithLabelValues("copy")))
}

func TestCustomGauge(t *testing.T) {
	c := MustNewMetrics(DefaultConfig())

	c.Gauge("grade_average", 3.0, map[string]string{"book": "primary"})
	c.Gauge("grade_average", 3.5, map[string]string{"book": "primary"})

	gauge := c.gauges["grade_average"]
	require.NotNil(t, gauge)
	assert.Equal(t, 3.5, testutil.ToFloat64(gauge.WithLabelValues("primary")))
}

func TestExtractLabels(t *testing.T) {
	names, values := extractLabels(map[string]string{"b": "2", "a": "1"})

	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []string{"1", "2"}, values)
}

func TestWriteText(t *testing.T) {
	c := MustNewMetrics(DefaultConfig())
	c.RecordOperation("primary", "remove", ResultNoop, time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), "# TYPE gradebook_tree_operations_total counter")
	assert.Contains(t, buf.String(), `gradebook_tree_operations_total{op="remove",result="noop",tree="primary"} 1`)
}

func TestRegistry(t *testing.T) {
	c := MustNewMetrics(&Config{Namespace: "reg"})
	c.ObserveShape("primary", 2, 1)
	c.Gauge("grade_average", 3.0, map[string]string{"book": "primary"})

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "reg_tree_size")
	assert.Contains(t, names, "reg_tree_height")
	assert.Contains(t, names, "reg_grade_average")
	count, err := testutil.GatherAndCount(c.Registry(), "reg_tree_size")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNop(t *testing.T) {
	var c Collector = Nop{}

	assert.NotPanics(t, func() {
		c.RecordOperation("t", "insert", ResultOK, time.Second)
		c.ObserveShape("t", 1, 0)
		c.Gauge("x", 1, nil)
	})
	assert.NoError(t, c.WriteText(&bytes.Buffer{}))
}
