package backend

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var backendRequestDurationHist = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "compose_service",
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of HTTP requests to the support backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status_code"}, // status_code "0" means no response
)

func observeBackendRequest(endpoint string, statusCode int, start time.Time) {
	backendRequestDurationHist.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Observe(time.Since(start).Seconds())
}
