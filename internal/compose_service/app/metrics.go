package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	composeOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compose_service",
			Name:      "operations_total",
			Help:      "Total contact and conversation operations handled.",
		},
		[]string{"operation", "status"}, // status: "success", "error"
	)

	composeOperationDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "compose_service",
			Name:      "operation_duration_seconds",
			Help:      "Duration of contact and conversation operations, transport round trip included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observeOperation(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	composeOperationsCounter.WithLabelValues(operation, status).Inc()
	composeOperationDurationHist.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
