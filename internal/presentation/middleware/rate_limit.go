package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

// clientLimiter pairs a token bucket with its last use, so idle clients
// can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware enforces a per-client-IP token bucket.
type RateLimitMiddleware struct {
	cfg     *config.RateLimitConfig
	logger  logger.Logger
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimitMiddleware creates the limiter and starts its cleanup loop.
func NewRateLimitMiddleware(cfg *config.RateLimitConfig, log logger.Logger) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		cfg:     cfg,
		logger:  log,
		clients: make(map[string]*clientLimiter),
	}
	if cfg.Enabled {
		go m.cleanupLoop()
	}
	return m
}

// Handler returns the gin middleware function.
func (m *RateLimitMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.cfg.Enabled {
			c.Next()
			return
		}

		if !m.limiterFor(c.ClientIP()).Allow() {
			m.logger.WithFields(map[string]interface{}{
				"client_ip": c.ClientIP(),
				"path":      c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse(
				"RATE_LIMITED",
				"Too many requests",
				nil,
			))
			return
		}
		c.Next()
	}
}

func (m *RateLimitMiddleware) limiterFor(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	cl, ok := m.clients[clientIP]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(m.cfg.RequestsPerSecond), m.cfg.Burst),
		}
		m.clients[clientIP] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

func (m *RateLimitMiddleware) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		for ip, cl := range m.clients {
			if time.Since(cl.lastSeen) > 5*time.Minute {
				delete(m.clients, ip)
			}
		}
		m.mu.Unlock()
	}
}
