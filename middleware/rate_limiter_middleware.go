package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	localCache "github.com/seanazu/value-hunter/cache"
	"github.com/seanazu/value-hunter/config"
	"github.com/seanazu/value-hunter/model"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RateLimiter throttles each client IP with a token bucket sized from the
// runtime config, so rate and burst changes apply without a restart.
func RateLimiter(cfg *config.ConfigManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rc := cfg.GetConfig()
		if !rc.RateLimiter {
			ctx.Next()
			return
		}

		limiter := limiterFor(ctx.ClientIP(), rc)
		if limiter.Allow() {
			ctx.Next()
			return
		}

		wait := retryAfter(limiter)
		log.Warn().
			Str("ip", ctx.ClientIP()).
			Str("path", ctx.Request.URL.Path).
			Int("retryAfter", wait).
			Msg("rate limit exceeded")

		ctx.Header("Retry-After", strconv.Itoa(wait))
		ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":   "Rate limit exceeded",
			"message": fmt.Sprintf("Too many requests. Please wait %d %s before trying again.", wait, plural(wait, "second")),
			"retry":   wait,
		})
	}
}

func limiterFor(ip string, rc *model.RuntimeConfig) *rate.Limiter {
	limit := rate.Limit(rc.RatePerSecond)
	if val, found := localCache.RateLimiterCache.Get(ip); found {
		limiter := val.(*rate.Limiter)
		if limiter.Limit() != limit {
			limiter.SetLimit(limit)
		}
		if limiter.Burst() != rc.RateBurst {
			limiter.SetBurst(rc.RateBurst)
		}
		return limiter
	}
	limiter := rate.NewLimiter(limit, rc.RateBurst)
	localCache.RateLimiterCache.Set(ip, limiter, cache.DefaultExpiration)
	return limiter
}

// retryAfter is the whole number of seconds until the bucket holds a token again.
func retryAfter(limiter *rate.Limiter) int {
	r := limiter.Reserve()
	if !r.OK() {
		return 1
	}
	delay := r.Delay()
	r.Cancel()
	if delay <= 0 {
		return 1
	}
	return int(math.Ceil(float64(delay) / float64(time.Second)))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
