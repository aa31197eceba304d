package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestID_Generated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	got := w.Header().Get(RequestIDHeader)
	if got == "" {
		t.Fatal("expected X-Request-ID header on response")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("X-Request-ID %q is not a valid UUID: %v", got, err)
	}
	if seen != got {
		t.Errorf("context request ID = %q, response header = %q", seen, got)
	}
}

func TestRequestID_HonorsInbound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "upstream-id-123")
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "upstream-id-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "upstream-id-123")
	}
}

func TestGetRequestID_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := GetRequestID(c); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
