package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				return m
			}
		}
	}
	return nil
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string)
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestPrometheusSink_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewPrometheusSink(reg)

	sink.ApplicationSubmitted()
	sink.ApplicationSubmitted()
	sink.ApplicationCountFailed()
	sink.JobCreated()

	tests := map[string]float64{
		"jobportal_applications_submitted_total":     2,
		"jobportal_application_count_failures_total": 1,
		"jobportal_jobs_created_total":               1,
	}
	for name, want := range tests {
		m := findMetric(t, reg, name, nil)
		if m == nil {
			t.Fatalf("%s not gathered", name)
		}
		if got := m.GetCounter().GetValue(); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestPrometheusSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewPrometheusSink(reg)
	second := NewPrometheusSink(reg)

	first.JobCreated()
	second.JobCreated()
	second.RequestObserved("GET", "/jobs", 200, time.Millisecond)

	m := findMetric(t, reg, "jobportal_jobs_created_total", nil)
	if m == nil || m.GetCounter().GetValue() != 2 {
		t.Fatalf("jobs created = %v, want 2 shared between sinks", m)
	}
	m = findMetric(t, reg, "jobportal_http_requests_total", map[string]string{"route": "/jobs", "status": "200"})
	if m == nil || m.GetCounter().GetValue() != 1 {
		t.Fatalf("requests from second sink not exposed: %v", m)
	}
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewPrometheusSink(reg)

	r := gin.New()
	r.Use(Middleware(sink))
	r.GET("/jobs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/jobs/1", "/jobs/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	m := findMetric(t, reg, "jobportal_http_requests_total", map[string]string{"route": "/jobs/:id", "status": "200"})
	if m == nil || m.GetCounter().GetValue() != 2 {
		t.Fatalf("expected 2 requests on /jobs/:id, got %v", m)
	}
	m = findMetric(t, reg, "jobportal_http_requests_total", map[string]string{"route": "unmatched", "status": "404"})
	if m == nil || m.GetCounter().GetValue() != 1 {
		t.Fatalf("expected 1 unmatched request, got %v", m)
	}
}

func TestHandler_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusSink(reg).JobCreated()

	r := gin.New()
	r.GET("/metrics", Handler(reg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "jobportal_jobs_created_total 1") {
		t.Errorf("exposition missing counter:\n%s", w.Body.String())
	}
}

func TestNoop(t *testing.T) {
	var s Sink = Noop{}
	s.RequestObserved("GET", "/", 200, time.Second)
	s.ApplicationSubmitted()
	s.ApplicationCountFailed()
	s.JobCreated()
}
