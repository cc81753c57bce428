package middleware

import "net/http"

// CORS allows cross-origin requests from exactly one configured origin, with
// credentials enabled. Preflight requests are answered with 200 so older
// browsers that choke on 204 keep working.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == allowedOrigin && origin != "" {
				headers := w.Header()
				headers.Set("Access-Control-Allow-Origin", allowedOrigin)
				headers.Set("Access-Control-Allow-Credentials", "true")
				headers.Add("Vary", "Origin")

				if r.Method == http.MethodOptions {
					headers.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
					headers.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
					w.WriteHeader(http.StatusOK)
					return
				}
			} else if r.Method == http.MethodOptions {
				// Preflight from a disallowed origin gets no CORS headers.
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
