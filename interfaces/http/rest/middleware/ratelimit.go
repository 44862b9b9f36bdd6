package middleware

import (
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
	"github.com/zaheyak/Content-Studio-sub000/pkg/ratelimit"
)

// RateLimit rejects requests over the client's budget with 429. Clients are
// keyed by address, so it must run after RealIP.
func RateLimit(limiter ratelimit.Limiter, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	retryAfter := int(limiter.Window().Seconds())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("Rate limiter error", zap.String("client", key), zap.Error(err))
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				errHandler.Handle(w, r, pkgerrors.NewRateLimitError(retryAfter))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
