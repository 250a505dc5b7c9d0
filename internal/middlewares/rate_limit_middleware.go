package middlewares

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/web"
	"golang.org/x/time/rate"
)

const rateLimitKeyPrefix = "orders:"

type RateLimitConfig struct {
	Rate  rate.Limit
	Burst int
}

// Limiter is satisfied by *redis_rate.Limiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type RateLimiterMiddleware struct {
	logger    logs.Logger
	config    RateLimitConfig
	limiter   Limiter
	isEnabled bool
}

func NewRateLimiterMiddleware(logger logs.Logger, config RateLimitConfig, limiter Limiter, isEnabled bool) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		logger:    logger,
		config:    config,
		limiter:   limiter,
		isEnabled: isEnabled && limiter != nil,
	}
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.isEnabled {
			next.ServeHTTP(w, r)
			return
		}

		ip, err := extractIPAddress(r)
		if err != nil {
			rl.logger.Error("could not parse IP from remote address", "error", err)
			web.RespondWithError(w, rl.logger, r, http.StatusInternalServerError, "Internal Server Error", "Could not process request.")
			return
		}

		limit := redis_rate.Limit{
			Rate:   int(rl.config.Rate),
			Period: time.Second,
			Burst:  rl.config.Burst,
		}

		res, err := rl.limiter.Allow(r.Context(), rateLimitKeyPrefix+ip, limit)
		if err != nil {
			rl.logger.Error("could not check rate limit", "error", err)
			web.RespondWithError(w, rl.logger, r, http.StatusInternalServerError, "Internal Server Error", "Could not process request.")
			return
		}

		if res.Allowed == 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			web.RespondWithError(w, rl.logger, r, http.StatusTooManyRequests, "Too Many Requests", "You have exceeded the request limit.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func extractIPAddress(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	return ip, nil
}
