package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/dto"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/telemetry"
)

// errInternalServer is the detail sent to clients for a recovered panic.
// The panic value and stack only go to the log.
var errInternalServer = errors.New("internal server error")

// Recovery returns middleware that recovers from panics in downstream
// handlers. A panic is logged with its stack, counted in
// http.server.panic.total under the matched route, and answered with an
// RFC 9457 500 response unless the headers are already out.
//
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
// If metrics is nil, counting is skipped.
func Recovery(logger *slog.Logger, metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := recordResponse(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				route := routePattern(r)
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("route", route),
				)
				if metrics != nil {
					metrics.ServerPanicTotal.Add(r.Context(), 1, metric.WithAttributes(
						telemetry.AttrHTTPMethod.String(r.Method),
						telemetry.AttrHTTPRoute.String(route),
					))
				}

				if !rec.Committed() {
					dto.WriteErrorResponse(rec, r, errInternalServer)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
