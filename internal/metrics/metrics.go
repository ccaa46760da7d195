package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the domain operations.
type Metrics struct {
	UsersRegistered   prometheus.Counter
	Logins            *prometheus.CounterVec
	StockAdjustments  prometheus.Counter
	InsufficientStock prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_users_registered_total",
			Help: "Total number of registered users",
		}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_logins_total",
			Help: "Total number of login attempts by outcome",
		}, []string{"outcome"}),
		StockAdjustments: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_stock_adjustments_total",
			Help: "Total number of applied stock adjustments",
		}),
		InsufficientStock: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_insufficient_stock_total",
			Help: "Total number of stock adjustments rejected for insufficient stock",
		}),
	}
}
