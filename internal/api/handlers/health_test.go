package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setupHealthTestRouter(version string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHealthHandler(version, zerolog.Nop())
	h.RegisterPublicRoutes(r)
	return r
}

func TestHealthCheck(t *testing.T) {
	r := setupHealthTestRouter("2.0.0")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Status != "success" {
		t.Errorf("Status = %q, want %q", resp.Status, "success")
	}
	if resp.Message != "Free Fire Ban Check API is running" {
		t.Errorf("Message = %q, want %q", resp.Message, "Free Fire Ban Check API is running")
	}
	if resp.Version != "2.0.0" {
		t.Errorf("Version = %q, want %q", resp.Version, "2.0.0")
	}
	if resp.APISource != "Official Garena API" {
		t.Errorf("APISource = %q, want %q", resp.APISource, "Official Garena API")
	}
}

func TestHealthCheck_FieldNames(t *testing.T) {
	r := setupHealthTestRouter("2.0.0")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	for _, key := range []string{"status", "message", "version", "api_source"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("response missing %q field", key)
		}
	}
	if len(payload) != 4 {
		t.Errorf("response has %d fields, want 4", len(payload))
	}
}
