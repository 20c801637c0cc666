// Package request provides the outermost HTTP middleware: it stamps every
// request with an ID, a consistent timestamp, and client metadata before any
// other layer runs.
package request

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"kader/pkg/requestcontext"
)

// HeaderRequestID carries the request ID back to clients and in from trusted
// proxies.
const HeaderRequestID = "X-Request-ID"

// Metadata injects request ID, request time, client IP, and User-Agent into
// the request context. Mount it first so every downstream log line can carry
// the request_id attribute.
func Metadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now())
		ctx = requestcontext.WithClientMetadata(ctx, clientIP(r), r.UserAgent())

		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
