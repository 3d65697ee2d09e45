package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "queue_depth",
			Help: "Current number of waiting tickets per priority class",
		},
		[]string{"class"},
	)

	queueOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_operations_total",
			Help: "Total queue operations",
		},
		[]string{"operation", "status"},
	)

	ticketsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_served_total",
			Help: "Total tickets that completed service",
		},
	)

	queueWatchers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "queue_watchers",
			Help: "Current number of connected websocket watchers",
		},
	)
)

func RecordOperation(operation, status string) {
	queueOperations.WithLabelValues(operation, status).Inc()
}

func SetQueueDepth(priority, normal int) {
	queueDepth.WithLabelValues("priority").Set(float64(priority))
	queueDepth.WithLabelValues("normal").Set(float64(normal))
}

func AddTicketsServed(count int) {
	ticketsServed.Add(float64(count))
}

func SetQueueWatchers(count int) {
	queueWatchers.Set(float64(count))
}
