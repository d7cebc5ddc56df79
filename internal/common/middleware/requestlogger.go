// Package middleware provides HTTP middleware components for request logging, timeout handling,
// and panic recovery. It integrates with zerolog for structured logging and supports request
// tracing through unique request IDs.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tansive/walleterrors/internal/common/httpx"
	"github.com/tansive/walleterrors/internal/common/logtrace"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger creates middleware that logs incoming requests and tags the request context
// and response headers with a request ID. A well-formed UUID in the incoming X-Request-ID
// header is reused; otherwise a new one is generated.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()

		requestID := requestIdFrom(r)
		ctx = logtrace.WithRequestId(ctx, requestID)
		ctx = log.With().Str("request_id", requestID).Logger().WithContext(ctx)

		w.Header().Set(RequestIDHeader, requestID)
		rw := httpx.NewResponseWriter(w)

		log.Ctx(ctx).Info().
			Str("requestMethod", r.Method).
			Str("requestPath", r.URL.Path).
			Str("remoteIP", r.RemoteAddr).
			Str("proto", r.Proto).
			Msg("incoming request")

		defer func() {
			log.Ctx(ctx).Info().
				Int("status", rw.Status()).
				Str("duration", fmt.Sprintf("%dms", time.Since(start).Milliseconds())).
				Msg("request completed")
		}()

		next.ServeHTTP(rw, r.WithContext(ctx))
	})
}

func requestIdFrom(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); id != "" {
		if u, err := uuid.Parse(id); err == nil {
			return u.String()
		}
	}
	u, err := uuid.NewRandom()
	if err == nil {
		return u.String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
