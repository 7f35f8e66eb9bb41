package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — счётчики сигналов и ордеров.
type Metrics struct {
	Signals *prometheus.CounterVec
	Orders  *prometheus.CounterVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Signals: f.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_signals_total",
			Help: "Signals produced, by symbol and action.",
		}, []string{"symbol", "action"}),
		Orders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_orders_total",
			Help: "Market orders submitted, by symbol, side and status.",
		}, []string{"symbol", "side", "status"}),
	}
}

func (m *Metrics) ObserveSignal(symbol, action string) {
	m.Signals.WithLabelValues(symbol, action).Inc()
}

func (m *Metrics) ObserveOrder(symbol, side, status string) {
	m.Orders.WithLabelValues(symbol, side, status).Inc()
}
