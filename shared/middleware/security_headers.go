package middleware

import (
	"net/http"
	"strings"
)

type SecurityOptions struct {
	IsHTTPS        bool
	CSP            string // if empty, no CSP header is set
	ReferrerPolicy string // defaults to same-origin
}

// WidgetCSP builds the Content-Security-Policy used for pages served by the service.
// connectSrc lists extra origins the widget may call besides 'self'.
func WidgetCSP(connectSrc ...string) string {
	connect := append([]string{"'self'"}, connectSrc...)
	return "default-src 'self'; connect-src " + strings.Join(connect, " ")
}

// SecurityHeaders sets the response headers that protect the landing page.
// Cross-Origin-Resource-Policy is left unset: widget.js is loaded by third-party pages.
func SecurityHeaders(opts SecurityOptions) func(http.Handler) http.Handler {
	referrerPolicy := opts.ReferrerPolicy
	if referrerPolicy == "" {
		referrerPolicy = "same-origin"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			headers.Set("X-Frame-Options", "SAMEORIGIN")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("X-DNS-Prefetch-Control", "off")
			headers.Set("Cross-Origin-Opener-Policy", "same-origin")
			headers.Set("Referrer-Policy", referrerPolicy)

			if opts.CSP != "" {
				headers.Set("Content-Security-Policy", opts.CSP)
			}

			// HSTS - only when using HTTPS
			if opts.IsHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
