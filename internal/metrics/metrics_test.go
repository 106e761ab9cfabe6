package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/events/by-venue/:venue", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/events/by-venue/hall", "/events/by-venue/lab", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/events/by-venue/:venue", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestObservers(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveExtraction("ok")
	m.ObserveExtraction("ok")
	m.ObserveExtraction("invalid_datetime")
	m.SetUpcoming(7)
	m.ObserveModelLatency(1500 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Extractions.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("invalid_datetime")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Upcoming))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ModelLatency))
}
