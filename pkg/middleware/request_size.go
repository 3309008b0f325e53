package middleware

import (
	"net/http"

	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
)

// MaxRequestSize rejects bodies declared larger than limit and caps the rest
// with http.MaxBytesReader. A limit of zero or less disables the check.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.TooLarge("Request body too large"))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
