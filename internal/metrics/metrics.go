// Package metrics provides Prometheus collectors for summarization and the HTTP shell.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InvalidStyleLabel is the style label for requests whose style was rejected.
const InvalidStyleLabel = "invalid"

var (
	// SummarizeRequestsTotal counts summarize calls by style and result.
	SummarizeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsum_summarize_requests_total",
			Help: "Total number of summarization requests",
		},
		[]string{"style", "result"},
	)

	// SummarizeDuration measures end-to-end summarization time.
	SummarizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textsum_summarize_duration_seconds",
			Help:    "Summarization duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
	)

	// SelectedSentences tracks how many sentences end up in a summary.
	SelectedSentences = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textsum_selected_sentences",
			Help:    "Number of sentences selected per summary",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	// DocumentSentences tracks the sentence count of incoming documents.
	DocumentSentences = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textsum_document_sentences",
			Help:    "Number of sentences per summarized document",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textsum_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textsum_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Recorder records summarization and HTTP outcomes.
type Recorder interface {
	RecordSummary(style string, documentSentences, selected int, d time.Duration, err error)
	RecordHTTP(method, path string, status int, d time.Duration)
}

// Prometheus records into the package collectors.
type Prometheus struct{}

func NewPrometheus() Prometheus { return Prometheus{} }

func (Prometheus) RecordSummary(style string, documentSentences, selected int, d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SummarizeRequestsTotal.WithLabelValues(style, result).Inc()
	SummarizeDuration.Observe(d.Seconds())
	if err == nil {
		DocumentSentences.Observe(float64(documentSentences))
		SelectedSentences.Observe(float64(selected))
	}
}

func (Prometheus) RecordHTTP(method, path string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordSummary(string, int, int, time.Duration, error) {}
func (Noop) RecordHTTP(string, string, int, time.Duration)        {}
