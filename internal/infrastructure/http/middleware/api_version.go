package middleware

import "net/http"

// Version is the API version advertised on every response.
const Version = "2.0.0"

// APIVersion stamps the X-API-Version header.
func APIVersion() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-API-Version", Version)
			next.ServeHTTP(w, r)
		})
	}
}
