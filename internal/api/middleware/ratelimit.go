package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/primetrade/taskboard-api/internal/api/shared"
)

// RequestLimiter is the surface the middleware needs from a rate limiter.
// Implemented by redis.FixedWindowLimiter.
type RequestLimiter interface {
	Allow(ctx context.Context, client string) bool
}

// RateLimitMiddleware rejects requests from clients that exceed the
// configured request budget with 429 Too Many Requests. Clients are
// identified by remote IP.
func RateLimitMiddleware(limiter RequestLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), clientIP(r)) {
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
					"Rate limit exceeded", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the request's remote IP without the port. RemoteAddr is
// expected to have been rewritten by the RealIP middleware when the server
// sits behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
