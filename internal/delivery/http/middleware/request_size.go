package middleware

import "net/http"

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
// Event images arrive inline, so the limit is larger than a plain JSON API needs.
const DefaultMaxBodyBytes int64 = 10 << 20

// RequestSize wraps the request body with http.MaxBytesReader. Decoding a body
// past maxBytes fails and DecodeAndValidate answers 413.
func RequestSize(maxBytes int64, next http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}
