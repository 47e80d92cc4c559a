package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type TerminalMetrics struct {
	SalesCompleted   prometheus.Counter
	CheckoutRejected *prometheus.CounterVec
	SubmitLatencyMS  prometheus.Histogram
}

func NewTerminalMetrics() *TerminalMetrics {
	salesCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "omnipos",
		Subsystem: "terminal",
		Name:      "sales_completed_total",
		Help:      "Total number of completed sales.",
	})
	checkoutRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "omnipos",
		Subsystem: "terminal",
		Name:      "checkout_rejected_total",
		Help:      "Checkout attempts rejected, by reason.",
	}, []string{"reason"})
	submitLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "omnipos",
		Subsystem: "terminal",
		Name:      "checkout_submit_duration_ms",
		Help:      "Sale submission latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	prometheus.MustRegister(salesCompleted, checkoutRejected, submitLatency)
	return &TerminalMetrics{
		SalesCompleted:   salesCompleted,
		CheckoutRejected: checkoutRejected,
		SubmitLatencyMS:  submitLatency,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
