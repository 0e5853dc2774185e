package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bio_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	// store round trips dominate, so the buckets start low
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bio_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// result is one of correct, incorrect, repeat, unknown
	AnswersRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bio_answers_recorded_total",
			Help: "Answers passed to the progress tracker by outcome",
		},
		[]string{"result"},
	)

	FeedbackSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bio_feedback_submitted_total",
			Help: "Question feedback submissions by type",
		},
		[]string{"type"},
	)

	UserQuestions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bio_user_questions",
			Help: "Questions currently in the user question bank",
		},
	)

	AchievementsUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bio_achievements_unlocked_total",
			Help: "Achievement unlocks by achievement id",
		},
		[]string{"achievement"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(AnswersRecorded)
		prometheus.MustRegister(FeedbackSubmitted)
		prometheus.MustRegister(UserQuestions)
		prometheus.MustRegister(AchievementsUnlocked)
	})
}

// MetricsMiddleware labels by matched route; unmatched paths share one
// label so scanners cannot blow up the series count.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		RequestCounter.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
