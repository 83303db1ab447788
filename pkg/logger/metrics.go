package logger

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/veesix-networks/logcfg/pkg/loglevel"
)

// Metrics counts log records per category and severity.
type Metrics struct {
	records *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logcfg",
			Name:      "log_records_total",
			Help:      "Log records handled, by category and level.",
		}, []string{"category", "level"}),
	}

	if err := reg.Register(m.records); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(category string, level loglevel.Level) {
	if category == "" {
		category = "."
	}
	m.records.WithLabelValues(category, level.String()).Inc()
}
