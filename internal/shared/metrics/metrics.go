package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "career_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	resumeSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_resume_saves_total",
			Help: "Resume save attempts by outcome",
		},
		[]string{"outcome"},
	)
	onboardingSubmits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_onboarding_submissions_total",
			Help: "Onboarding submissions by outcome",
		},
		[]string{"outcome"},
	)
	composeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_markdown_compose_seconds",
			Help:    "Time spent composing resume Markdown",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		},
	)
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	httpRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(d.Seconds())
}

// IncResumeSave counts a resume save attempt.
func IncResumeSave(outcome string) {
	resumeSaves.WithLabelValues(outcome).Inc()
}

// IncOnboardingSubmit counts an onboarding submission.
func IncOnboardingSubmit(outcome string) {
	onboardingSubmits.WithLabelValues(outcome).Inc()
}

// ObserveCompose records a Markdown composition.
func ObserveCompose(d time.Duration) {
	composeDuration.Observe(d.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
