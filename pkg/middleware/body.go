package middleware

import "net/http"

// MaxBody limits request bodies to limit bytes. Reads past the limit fail
// with *http.MaxBytesError.
func MaxBody(limit int64) Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
