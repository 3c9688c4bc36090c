package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Sink receives portal events. Implementations must be safe for concurrent use.
type Sink interface {
	RequestObserved(method, route string, status int, d time.Duration)
	ApplicationSubmitted()
	ApplicationCountFailed()
	JobCreated()
}

// Noop discards every event.
type Noop struct{}

func (Noop) RequestObserved(string, string, int, time.Duration) {}
func (Noop) ApplicationSubmitted()                              {}
func (Noop) ApplicationCountFailed()                            {}
func (Noop) JobCreated()                                        {}

// PrometheusSink implements Sink with Prometheus collectors.
type PrometheusSink struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	applicationsTotal prometheus.Counter
	countFailures     prometheus.Counter
	jobsTotal         prometheus.Counter
}

// NewPrometheusSink registers the portal collectors with reg. Collectors
// already on reg are shared; other registration failures are logged and the
// collector keeps working unregistered.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	s := &PrometheusSink{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		applicationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_applications_submitted_total",
			Help: "Total number of job applications stored.",
		}),
		countFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_application_count_failures_total",
			Help: "Applications stored without a matching applicationCount increment.",
		}),
		jobsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_jobs_created_total",
			Help: "Total number of jobs created.",
		}),
	}

	s.requestsTotal = register(reg, s.requestsTotal, "jobportal_http_requests_total")
	s.requestDuration = register(reg, s.requestDuration, "jobportal_http_request_duration_seconds")
	s.applicationsTotal = register(reg, s.applicationsTotal, "jobportal_applications_submitted_total")
	s.countFailures = register(reg, s.countFailures, "jobportal_application_count_failures_total")
	s.jobsTotal = register(reg, s.jobsTotal, "jobportal_jobs_created_total")
	return s
}

// register adds c to reg. When an identical collector is already registered
// the existing one is returned so that every sink on reg reports to it.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, name string) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}
	logrus.WithError(err).WithField("metric", name).Warn("metrics: failed to register collector")
	return c
}

func (s *PrometheusSink) RequestObserved(method, route string, status int, d time.Duration) {
	s.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	s.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (s *PrometheusSink) ApplicationSubmitted()   { s.applicationsTotal.Inc() }
func (s *PrometheusSink) ApplicationCountFailed() { s.countFailures.Inc() }
func (s *PrometheusSink) JobCreated()             { s.jobsTotal.Inc() }

// Middleware records every request against its route template.
func Middleware(sink Sink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		sink.RequestObserved(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) gin.HandlerFunc {
	h := promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
