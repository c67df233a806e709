// Package metadata stamps request-scoped values (request id, request time)
// into the context and echoes the request id back to callers.
package metadata

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"cleargate/pkg/requestcontext"
)

const headerRequestID = "X-Request-ID"

// Annotate assigns a request id (honoring an inbound X-Request-ID) and a
// request timestamp, making both available via pkg/requestcontext.
func Annotate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now())

		w.Header().Set(headerRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
