package wsserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the transport-level prometheus collectors.
type Metrics struct {
	ConnectionsTotal prometheus.Counter
	ConnectionsOpen  prometheus.Gauge
	MessagesTotal    *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConnectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "storefront_connections_total",
			Help: "Client connections accepted since start.",
		}),
		ConnectionsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_connections_open",
			Help: "Client connections currently open.",
		}),
		MessagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_messages_total",
			Help: "Inbound messages handled, by method.",
		}, []string{"method"}),
	}
}
