package middleware

import "net/http"

// MaxRequestSize caps the request body at maxBytes. Oversized bodies surface
// as a decode error in the handler, which maps them to a 400 response.
func MaxRequestSize(maxBytes int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
			next.ServeHTTP(w, r)
		})
	}
}
