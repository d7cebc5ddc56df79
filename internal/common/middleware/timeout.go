package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tansive/walleterrors/internal/common/httpx"
)

const TimeoutHeader = "X-Request-Timeout"

// timeoutWriter drops writes from a handler that outlived its deadline.
type timeoutWriter struct {
	mu       sync.Mutex
	rw       *httpx.ResponseWriter
	timedOut bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.rw.Header()
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return
	}
	tw.rw.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	return tw.rw.Write(b)
}

// SetTimeout creates middleware that enforces a timeout for request handling. If the request
// exceeds the duration and nothing was written yet, a timeout error response is sent.
func SetTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			w.Header().Set(TimeoutHeader, timeout.String())
			tw := &timeoutWriter{rw: httpx.NewResponseWriter(w)}
			r = r.WithContext(ctx)

			done := make(chan struct{})
			go func() {
				defer func() {
					if p := recover(); p != nil {
						log.Ctx(ctx).Error().Msgf("panic in handler: %v", p)
						tw.mu.Lock()
						if !tw.timedOut && !tw.rw.Written() {
							httpx.ErrApplicationError().Send(tw.rw)
						}
						tw.mu.Unlock()
					}
					close(done)
				}()
				next.ServeHTTP(tw, r)
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.rw.Written() {
					httpx.ErrRequestTimeout().Send(tw.rw)
				}
				log.Ctx(ctx).Error().Msg("request timed out")
			}
		})
	}
}
