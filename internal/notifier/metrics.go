package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts notification side effects. A nil registerer leaves the
// collectors unregistered.
type Metrics struct {
	Commands   *prometheus.CounterVec
	Deliveries *prometheus.CounterVec
	QueueDepth prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitlife",
			Name:      "notification_commands_total",
			Help:      "Schedule and cancel commands processed, by outcome.",
		}, []string{"kind", "outcome"}),
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitlife",
			Name:      "notification_deliveries_total",
			Help:      "Due notifications handed to the delivery backend, by outcome.",
		}, []string{"backend", "outcome"}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fitlife",
			Name:      "notification_queue_depth",
			Help:      "Commands waiting in the notification queue.",
		}),
	}
}
