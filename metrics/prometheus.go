package metrics

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// all metrics and middlewares for the REST API
var (
	// to prevent metrics from being initialized multiple times
	isMetricsInitVar uint32 = 0

	// active REST API connections
	activeRESTConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_rest_connections",
			Help: "Number of active REST API connections",
		},
	)

	// response times for REST APIs
	responseTimeRESTAPI = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restapi_response_time_milliseconds",
			Help:    "REST API response time distributions",
			Buckets: []float64{1, 10, 50, 100, 200, 300, 400, 500},
		},
		[]string{"method", "endpoint"},
	)

	// Number of requests processed by REST API
	RESTRequestMetricsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rest_requests_processed_total",
		Help: "The total number of processed REST requests",
	}, []string{"method", "endpoint"})

	// Number of registered user accounts
	UsersRegisteredMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "users_registered_total",
		Help: "The total number of registered user accounts",
	})

	// Number of envelopes created at the e-signature provider
	EnvelopesCreatedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "envelopes_created_total",
		Help: "The total number of envelopes created at the e-signature provider",
	})

	// Number of embedded recipient views created
	RecipientViewsCreatedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recipient_views_created_total",
		Help: "The total number of embedded recipient views created",
	})

	// Number of access token exchanges with the providers auth server
	TokenExchangesMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "access_token_exchanges_total",
		Help: "The total number of access token exchanges with the providers auth server",
	})
)

func setIsMetricsInit() {
	atomic.StoreUint32(&isMetricsInitVar, 1)
}

func isMetricsInit() bool {
	return atomic.LoadUint32(&isMetricsInitVar) == 1
}

func InitMetrics() {
	if !isMetricsInit() {
		setIsMetricsInit()

		// Metrics have to be registered to be exposed
		prometheus.MustRegister(activeRESTConnections)
		prometheus.MustRegister(responseTimeRESTAPI)
		prometheus.MustRegister(RESTRequestMetricsTotal)
		prometheus.MustRegister(UsersRegisteredMetricsCount)
		prometheus.MustRegister(EnvelopesCreatedMetricsCount)
		prometheus.MustRegister(RecipientViewsCreatedMetricsCount)
		prometheus.MustRegister(TokenExchangesMetricsCount)
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Increment the counter for the given endpoint:
		RESTRequestMetricsTotal.WithLabelValues(c.Request.Method, c.FullPath()).Inc()

		// Start timing responseTime histogram
		start := time.Now()

		// Set activeConnections gauge
		activeRESTConnections.Inc()
		defer activeRESTConnections.Dec()

		c.Next()

		// Set responseTime histogram
		latency := time.Since(start)
		responseTimeRESTAPI.WithLabelValues(c.Request.Method, c.Request.URL.Path).Observe(float64(latency.Milliseconds()))
	}
}
