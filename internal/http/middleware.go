package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/cors"
)

// SecurityHeaders adds security-related headers to all responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Swagger UI needs scripts, styles, and images to render
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		} else {
			w.Header().Set("Content-Security-Policy", "default-src 'none'")
		}

		next.ServeHTTP(w, r)
	})
}

// CORS applies credentialed CORS for trustedOrigins everywhere except
// openPaths, which accept any origin without credentials. Pre-flight
// requests on open paths fall through to the route's OPTIONS handler.
func CORS(trustedOrigins []string, openPaths ...string) func(http.Handler) http.Handler {
	trusted := cors.Handler(cors.Options{
		AllowedOrigins:   trustedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-Type"},
		ExposedHeaders:   []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	})
	open := cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"POST", "OPTIONS"},
		AllowedHeaders:     []string{"*"},
		OptionsPassthrough: true,
	})

	return func(next http.Handler) http.Handler {
		trustedNext, openNext := trusted(next), open(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(openPaths, r.URL.Path) {
				openNext.ServeHTTP(w, r)
				return
			}
			trustedNext.ServeHTTP(w, r)
		})
	}
}
