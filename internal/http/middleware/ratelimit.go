package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// windowLimiter is the in-memory fixed window used when Redis is not configured.
type windowLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string]*clientInfo
}

func newWindowLimiter(maxRequests int, window time.Duration) *windowLimiter {
	return &windowLimiter{
		max:     maxRequests,
		window:  window,
		clients: make(map[string]*clientInfo),
	}
}

func (l *windowLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ci, ok := l.clients[key]
	if !ok || now.Sub(ci.last) > l.window {
		l.clients[key] = &clientInfo{last: now, count: 1}
		l.sweep(now)
		return true
	}

	ci.count++
	return ci.count <= l.max
}

// sweep drops expired windows so the map does not grow without bound
func (l *windowLimiter) sweep(now time.Time) {
	for k, ci := range l.clients {
		if now.Sub(ci.last) > l.window {
			delete(l.clients, k)
		}
	}
}

// SimpleRateLimit blocks clients that send more than maxRequests per window
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	l := newWindowLimiter(maxRequests, window)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
