// Package metrics exposes Prometheus instrumentation for the order simulator.
// Counters are registered with the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ordersim_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ordersim_orders_cancelled_total",
		Help: "Total number of orders cancelled by explicit request.",
	})

	SweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ordersim_sweeps_total",
		Help: "Total number of status sweep executions (timer and manual).",
	})

	OrdersAdvancedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ordersim_orders_advanced_total",
		Help: "Total number of automatic status transitions applied by sweeps.",
	})

	SweepOrderFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ordersim_sweep_order_failures_total",
		Help: "Per-order failures contained within a sweep batch.",
	},
		[]string{"stage"},
	)
)
