package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	limiters = make(map[string]*rate.Limiter)
	mu       sync.Mutex
)

func getLimiter(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	limiter, exists := limiters[key]
	if !exists {
		limiter = rate.NewLimiter(r, b)
		limiters[key] = limiter
	}
	return limiter
}

// ClientKey buckets callers by IP, or by route while debugging locally.
func ClientKey(c *gin.Context) string {
	if gin.Mode() == gin.DebugMode {
		return c.FullPath()
	}
	return c.ClientIP()
}

// RateLimitMiddleware allows b requests in a burst and r per second after
// that, per scope and caller key. Each scope keeps its own buckets so a
// tight limit on one route does not drain a looser one.
func RateLimitMiddleware(scope string, r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + "|" + keyFunc(c)
		limiter := getLimiter(key, r, b)

		if !limiter.Allow() {
			log.Warn().Str("scope", scope).Str("key", key).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}

		c.Next()
	}
}
