package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreLatency is the duration of guild store operations.
	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_store_latency",
			Help: "Duration of guild store operations",
		},
		[]string{"dal", "query"},
	)

	// StoreTotalRequests is the total number of guild store operations.
	StoreTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_store_total_requests",
			Help: "Total number of guild store operations",
		},
		[]string{"dal", "query"},
	)

	// StoreErrors is the total number of failed guild store operations.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_store_errors",
			Help: "Total number of failed guild store operations",
		},
		[]string{"dal", "query"},
	)
)

// Observe starts the metrics for a store operation. Call the returned func when it finishes.
func Observe(dal, query string) func() {
	StoreTotalRequests.WithLabelValues(dal, query).Inc()
	t := prometheus.NewTimer(StoreLatency.WithLabelValues(dal, query))
	return func() {
		t.ObserveDuration()
	}
}
