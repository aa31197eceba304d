package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNew_Registration(t *testing.T) {
	t.Run("creates metrics successfully", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m, err := New(reg)
		if err != nil {
			t.Fatalf("failed to create metrics: %v", err)
		}
		if m == nil {
			t.Fatal("expected non-nil metrics")
		}
		if m.RequestCounter == nil {
			t.Error("RequestCounter should not be nil")
		}
		if m.RequestDuration == nil {
			t.Error("RequestDuration should not be nil")
		}
		if m.UpstreamCounter == nil {
			t.Error("UpstreamCounter should not be nil")
		}
		if m.UpstreamDuration == nil {
			t.Error("UpstreamDuration should not be nil")
		}
	})

	t.Run("fails on duplicate registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := New(reg)
		if err != nil {
			t.Fatalf("first registration failed: %v", err)
		}
		_, err = New(reg)
		if err == nil {
			t.Fatal("expected error on duplicate registration")
		}
	})
}

func TestRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	t.Run("increments request counter", func(t *testing.T) {
		m.RecordRequest("GET", "/api/check-ban/:uid", 200, 0.25)
		m.RecordRequest("GET", "/api/check-ban/:uid", 200, 0.5)

		val := getCounterValue(t, m.RequestCounter, "GET", "/api/check-ban/:uid", "200")
		if val != 2 {
			t.Errorf("expected 2, got %f", val)
		}
	})

	t.Run("tracks status codes separately", func(t *testing.T) {
		m.RecordRequest("GET", "/api/check-ban/:uid", 400, 0.125)

		val := getCounterValue(t, m.RequestCounter, "GET", "/api/check-ban/:uid", "400")
		if val != 1 {
			t.Errorf("expected 1, got %f", val)
		}
	})

	t.Run("observes request duration", func(t *testing.T) {
		count, sum := getHistogramValues(t, m.RequestDuration, "GET", "/api/check-ban/:uid")
		if count != 3 {
			t.Errorf("expected count 3, got %d", count)
		}
		if sum != 0.875 {
			t.Errorf("expected sum 0.875, got %f", sum)
		}
	})
}

func TestRecordUpstreamRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	m.RecordUpstreamRequest("success", 0.5)
	m.RecordUpstreamRequest("success", 0.3)
	m.RecordUpstreamRequest("rejected", 0.1)
	m.RecordUpstreamRequest("unreachable", 15.0)

	if val := getCounterValue(t, m.UpstreamCounter, "success"); val != 2 {
		t.Errorf("success counter = %f, want 2", val)
	}
	if val := getCounterValue(t, m.UpstreamCounter, "rejected"); val != 1 {
		t.Errorf("rejected counter = %f, want 1", val)
	}
	if val := getCounterValue(t, m.UpstreamCounter, "unreachable"); val != 1 {
		t.Errorf("unreachable counter = %f, want 1", val)
	}

	var dtoM dto.Metric
	if err := m.UpstreamDuration.(prometheus.Metric).Write(&dtoM); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if count := dtoM.GetHistogram().GetSampleCount(); count != 4 {
		t.Errorf("upstream duration sample count = %d, want 4", count)
	}
}

func TestHandler_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	m.RecordRequest("GET", "/", 200, 0.01)
	m.RecordUpstreamRequest("success", 0.2)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	for _, name := range []string{
		"bancheck_http_requests_total",
		"bancheck_http_request_duration_seconds",
		"bancheck_upstream_requests_total",
		"bancheck_upstream_request_duration_seconds",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("exposition missing metric %q", name)
		}
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/widgets/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("labels matched routes with the template", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/widgets/42", nil)
		r.ServeHTTP(w, req)

		val := getCounterValue(t, m.RequestCounter, "GET", "/widgets/:id", "200")
		if val != 1 {
			t.Errorf("expected 1, got %f", val)
		}
	})

	t.Run("labels unmatched routes as unmatched", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/missing", nil)
		r.ServeHTTP(w, req)

		val := getCounterValue(t, m.RequestCounter, "GET", "unmatched", "404")
		if val != 1 {
			t.Errorf("expected 1, got %f", val)
		}
	})
}

// Helper functions for extracting Prometheus metric values.

func getCounterValue(t *testing.T, counter *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	var m dto.Metric
	if err := counter.WithLabelValues(labels...).(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func getHistogramValues(t *testing.T, hist *prometheus.HistogramVec, labels ...string) (uint64, float64) {
	t.Helper()
	observer := hist.WithLabelValues(labels...)
	var m dto.Metric
	if err := observer.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}
