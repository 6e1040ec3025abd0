package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("defaults", func(t *testing.T) {
		rr := httptest.NewRecorder()
		SecurityHeaders(SecurityOptions{})(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		h := rr.Header()
		assert.Equal(t, "SAMEORIGIN", h.Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
		assert.Equal(t, "same-origin", h.Get("Referrer-Policy"))
		assert.Empty(t, h.Get("Content-Security-Policy"))
		assert.Empty(t, h.Get("Strict-Transport-Security"))
		assert.Empty(t, h.Get("Cross-Origin-Resource-Policy"))
	})

	t.Run("csp and hsts", func(t *testing.T) {
		rr := httptest.NewRecorder()
		opts := SecurityOptions{IsHTTPS: true, CSP: WidgetCSP("https://feedback.example.com")}
		SecurityHeaders(opts)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "default-src 'self'; connect-src 'self' https://feedback.example.com", rr.Header().Get("Content-Security-Policy"))
		assert.Contains(t, rr.Header().Get("Strict-Transport-Security"), "max-age=31536000")
	})
}
