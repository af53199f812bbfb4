package catlog

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.record(LevelError)
	m.dropped(reasonRetired)

	expected := `
# HELP catlog_records_total Records accepted into the history, by level.
# TYPE catlog_records_total counter
catlog_records_total{level="Error"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "catlog_records_total"); err != nil {
		t.Error(err)
	}
	if got := testutil.ToFloat64(m.Dropped.WithLabelValues(reasonRetired)); got != 1 {
		t.Errorf("dropped = %v, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.record(LevelInfo)
	m.dropped(reasonUninitialized)
	m.sinkError(sinkFile)
	m.notification(resultSent)
}
