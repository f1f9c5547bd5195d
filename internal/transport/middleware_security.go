package transport

import (
	"net/http"

	"github.com/go-chi/cors"
)

// WithSecurityHeaders adds standard HTTP security headers to the response.
// HSTS is only sent in production, where traffic is served over HTTPS.
func WithSecurityHeaders(next http.Handler, isProduction bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		if isProduction {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		// JSON only, nothing may be loaded if a response is rendered as HTML.
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// WithCORS answers preflight requests for the allowed origins and exposes
// the session header so browsers can read a generated id.
func WithCORS(next http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
