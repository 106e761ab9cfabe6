package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics собирает счётчики сервиса.
type Metrics struct {
	Extractions  *prometheus.CounterVec
	ModelLatency prometheus.Histogram
	Upcoming     prometheus.Gauge
	Requests     *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
}

// New регистрирует коллекторы в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poster_extractions_total",
			Help: "Poster extraction attempts by result.",
		}, []string{"result"}),
		ModelLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "poster_model_request_seconds",
			Help:    "Latency of the vision model call.",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 32},
		}),
		Upcoming: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poster_upcoming_events",
			Help: "Number of stored events dated today or later.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poster_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "poster_http_request_seconds",
			Help:    "HTTP request duration by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.Extractions, m.ModelLatency, m.Upcoming, m.Requests, m.Duration)
	return m
}

// ObserveExtraction увеличивает счётчик извлечений с результатом result.
func (m *Metrics) ObserveExtraction(result string) {
	m.Extractions.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveModelLatency(d time.Duration) {
	m.ModelLatency.Observe(d.Seconds())
}

func (m *Metrics) SetUpcoming(n int64) {
	m.Upcoming.Set(float64(n))
}

// Middleware считает запросы по шаблону маршрута, а не по фактическому пути.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.Requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.Duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
