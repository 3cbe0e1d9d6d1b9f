package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics holds the Prometheus collectors for the order lifecycle.
// They are recorded by the analytics event consumer, not by the workflow
// itself, so a metrics outage can never fail an order operation.
type OrderMetrics struct {
	// OrdersCreated counts successfully created orders.
	OrdersCreated prometheus.Counter
	// OrdersPaid counts successfully paid orders.
	OrdersPaid prometheus.Counter
	// OrdersCancelled counts cancelled orders.
	OrdersCancelled prometheus.Counter
	// Revenue accumulates paid order amounts.
	Revenue prometheus.Counter
}

// NewOrderMetrics registers the order collectors with the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use a fresh
// prometheus.NewRegistry to avoid double registration.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	factory := promauto.With(reg)

	return &OrderMetrics{
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "orderservice",
			Name:      "orders_created_total",
			Help:      "Total number of orders created.",
		}),
		OrdersPaid: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "orderservice",
			Name:      "orders_paid_total",
			Help:      "Total number of orders paid.",
		}),
		OrdersCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "orderservice",
			Name:      "orders_cancelled_total",
			Help:      "Total number of orders cancelled.",
		}),
		Revenue: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "orderservice",
			Name:      "revenue_total",
			Help:      "Total amount paid across all orders.",
		}),
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
