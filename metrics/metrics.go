// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Ptt-Alertor/bank-api/models/bank"
)

var (
	BankOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bank_operations_total",
		Help: "Count of successful bank account mutations",
	}, []string{"op"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Count of HTTP requests served",
	}, []string{"method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// BankListener counts every store mutation by op
type BankListener struct{}

// Handle implements bank.Listener
func (BankListener) Handle(e bank.Event) {
	BankOperations.WithLabelValues(string(e.Op)).Inc()
}

// ObserveRequest records one served request
func ObserveRequest(method string, status int, took time.Duration) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method).Observe(took.Seconds())
}
