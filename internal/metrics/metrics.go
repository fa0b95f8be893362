package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShipmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freightline_shipments_created_total",
		Help: "Total number of shipments successfully created.",
	})

	StateTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freightline_state_transitions_total",
		Help: "Total number of shipment state transitions, by action.",
	},
		[]string{"action"},
	)

	TrackingLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freightline_tracking_lookups_total",
		Help: "Total number of public tracking lookups, by result.",
	},
		[]string{"result"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freightline_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	RealtimeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "freightline_realtime_subscribers",
		Help: "Current number of connected realtime subscribers.",
	})
)
