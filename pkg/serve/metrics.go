package serve

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/praetorian-inc/macrolex/pkg/scanner"
)

// Metrics instruments a Server. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	tokens   prometheus.Counter
	comments prometheus.Counter
	duration *prometheus.HistogramVec
}

// NewMetrics registers the server metrics with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	return &Metrics{
		requests: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Name: "macrolex_serve_requests_total",
			Help: "Total number of requests answered, by type and outcome.",
		}, []string{"type", "outcome"}),
		tokens: promauto.With(registerer).NewCounter(prometheus.CounterOpts{
			Name: "macrolex_serve_tokens_total",
			Help: "Total number of macro tokens returned.",
		}),
		comments: promauto.With(registerer).NewCounter(prometheus.CounterOpts{
			Name: "macrolex_serve_comments_total",
			Help: "Total number of comment bodies returned.",
		}),
		duration: promauto.With(registerer).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "macrolex_serve_request_duration_seconds",
			Help:    "Time spent answering a request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
	}
}

func (m *Metrics) observe(respType string, data any, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.requests.WithLabelValues(respType, outcome).Inc()
	m.duration.WithLabelValues(respType).Observe(elapsed.Seconds())

	switch r := data.(type) {
	case *scanner.ScanResult:
		m.tokens.Add(float64(len(r.Tokens)))
		m.comments.Add(float64(len(r.Comments)))
	case *scanner.BatchScanResult:
		for _, res := range r.Results {
			m.tokens.Add(float64(len(res.Tokens)))
			m.comments.Add(float64(len(res.Comments)))
		}
	}
}
