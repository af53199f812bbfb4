package catlog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons.
const (
	reasonUninitialized = "uninitialized"
	reasonBelowMinLevel = "below_min_level"
	reasonRetired       = "retired"
)

// Notification results.
const (
	resultSent      = "sent"
	resultFailed    = "failed"
	resultQueueFull = "queue_full"
)

// Sink names used as metric labels.
const (
	sinkConsole = "console"
	sinkFile    = "file"
)

// Metrics counts logger activity. A nil *Metrics records nothing.
type Metrics struct {
	Records       *prometheus.CounterVec
	Dropped       *prometheus.CounterVec
	SinkErrors    *prometheus.CounterVec
	Notifications *prometheus.CounterVec
}

// NewMetrics creates the logger counters and registers them with reg.
// A nil reg creates unregistered counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Records: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catlog_records_total",
			Help: "Records accepted into the history, by level.",
		}, []string{"level"}),
		Dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catlog_records_dropped_total",
			Help: "Records discarded before reaching the history.",
		}, []string{"reason"}),
		SinkErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catlog_sink_errors_total",
			Help: "Write failures of the console and file sinks.",
		}, []string{"sink"}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catlog_notifications_total",
			Help: "Remote notification outcomes.",
		}, []string{"result"}),
	}
}

func (m *Metrics) record(l Level) {
	if m != nil {
		m.Records.WithLabelValues(l.String()).Inc()
	}
}

func (m *Metrics) dropped(reason string) {
	if m != nil {
		m.Dropped.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) sinkError(sink string) {
	if m != nil {
		m.SinkErrors.WithLabelValues(sink).Inc()
	}
}

func (m *Metrics) notification(result string) {
	if m != nil {
		m.Notifications.WithLabelValues(result).Inc()
	}
}
