package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/dto"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/config"
)

// CommitRateLimit returns middleware that admits requests through a token
// bucket built from cfg. Every explicit commit forces a synchronous
// commit-or-rollback on the store's owner, so the bucket keeps a client
// loop from starving the coalesced path.
//
// Rejected requests get an RFC 9457 429 response with a Retry-After
// header. A zero cfg.RequestsPerSecond disables limiting.
func CommitRateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.RequestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize)
	retryAfter := strconv.Itoa(int(math.Ceil(1 / cfg.RequestsPerSecond)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				dto.WriteErrorResponse(w, r, fmt.Errorf("%w: at most %g commits per second",
					dto.ErrRateLimited, cfg.RequestsPerSecond))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
