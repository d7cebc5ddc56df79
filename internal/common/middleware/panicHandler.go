package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/tansive/walleterrors/internal/common/httpx"
	"github.com/tansive/walleterrors/internal/common/logtrace"
)

// PanicHandler turns a panic in a handler into a 500. The reply names the
// request id so a client can quote it; the stack only goes to the log.
func PanicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := httpx.NewResponseWriter(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestId := logtrace.RequestIdFromContext(r.Context())
			log.Ctx(r.Context()).Error().
				Interface("panic", rec).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bytes("stack_trace", debug.Stack()).
				Msg("handler panicked")

			if rw.Written() {
				return
			}
			msg := "unable to process request"
			if requestId != "" {
				msg += " (request id: " + requestId + ")"
			}
			httpx.ErrApplicationError(msg).Send(rw)
		}()
		next.ServeHTTP(rw, r)
	})
}
