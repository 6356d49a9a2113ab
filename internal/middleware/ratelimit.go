package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RateLimiter is a sliding-window request limiter keyed by client IP.
type RateLimiter struct {
	requests    map[string][]time.Time // IP -> request times inside the window
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewRateLimiter allows maxRequests per client IP within window.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Allow records a request from ip and reports whether it is within the limit.
func (m *RateLimiter) Allow(ip string) bool {
	now := m.now()
	windowStart := now.Add(-m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	var valid []time.Time
	for _, ts := range m.requests[ip] {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	if len(valid) >= m.maxRequests {
		m.requests[ip] = valid
		return false
	}
	m.requests[ip] = append(valid, now)
	return true
}

// Handler rejects requests over the limit with 429.
func (m *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !m.Allow(ip) {
			log.WithField("client_ip", ip).Warn("Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Demasiadas solicitudes"})
			return
		}
		c.Next()
	}
}

// Prune drops clients with no requests inside the window.
func (m *RateLimiter) Prune() {
	windowStart := m.now().Add(-m.window)
	m.mu.Lock()
	defer m.mu.Unlock()
	for ip, times := range m.requests {
		if len(times) == 0 || !times[len(times)-1].After(windowStart) {
			delete(m.requests, ip)
		}
	}
}
