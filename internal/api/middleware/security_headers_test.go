package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSecurityHeaders_AllHeadersSet(t *testing.T) {
	mw := SecurityHeaders()

	r := gin.New()
	r.Use(mw)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	expected := map[string]string{
		"X-Frame-Options":         "DENY",
		"X-Content-Type-Options":  "nosniff",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Permissions-Policy":      "geolocation=(), microphone=(), camera=()",
		"Content-Security-Policy": cspAPI,
	}

	for header, want := range expected {
		if got := w.Header().Get(header); got != want {
			t.Errorf("expected %s %q, got %q", header, want, got)
		}
	}

	// HSTS should NOT be set without TLS
	if got := w.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("expected no Strict-Transport-Security without TLS, got %q", got)
	}
}

func TestSecurityHeaders_HSTSOnlyWithTLS(t *testing.T) {
	mw := SecurityHeaders()

	r := gin.New()
	r.Use(mw)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.TLS = &tls.ConnectionState{}
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if got := w.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("expected HSTS header with TLS, got %q", got)
	}
}

func TestSecurityHeaders_DocsRouteRelaxedCSP(t *testing.T) {
	mw := SecurityHeaders()

	r := gin.New()
	r.Use(mw)
	r.GET("/api/docs/index.html", func(c *gin.Context) {
		c.String(http.StatusOK, "<html></html>")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/docs/index.html", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if got := w.Header().Get("Content-Security-Policy"); got != cspDocs {
		t.Errorf("expected docs CSP %q, got %q", cspDocs, got)
	}
}

func TestIsDocsRoute(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/docs/index.html", true},
		{"/api/docs/doc.json", true},
		{"/", false},
		{"/api/check-ban/123", false},
		{"/api/version", false},
		{"/metrics", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isDocsRoute(tt.path); got != tt.want {
				t.Errorf("isDocsRoute(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
