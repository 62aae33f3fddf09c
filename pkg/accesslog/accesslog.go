// Package accesslog provides a middleware that records every served request.
package accesslog

import (
	"net/http"
	"time"

	"github.com/KretovDmitry/bank-account/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	requestIDHeader     = "X-Request-ID"
	correlationIDHeader = "X-Correlation-ID"
)

// Handler returns a middleware that records an access log message for every HTTP request being processed.
// Every request gets a request ID, taken from the X-Request-ID header or generated,
// which is carried in the request context and echoed in the response.
func Handler(l logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := logger.WithRequestID(r.Context(), requestID)
			if id := r.Header.Get(correlationIDHeader); id != "" {
				ctx = logger.WithCorrelationID(ctx, id)
			}
			r = r.WithContext(ctx)

			w.Header().Set(requestIDHeader, requestID)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			l.With(ctx, "duration", time.Since(start).Milliseconds(), "status", status).
				Infof("%s %s %s %d %d", r.Method, r.URL.Path, r.Proto, status, ww.BytesWritten())
		}
		return http.HandlerFunc(f)
	}
}
