package shared

import (
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JusFlow/datajud-service/internal/types"
	"github.com/JusFlow/datajud-service/internal/utils"
)

// RequestID attaches a unique ID to every request. Incoming X-Request-ID
// headers are honored so IDs survive proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)

		c.Next()
	}
}

// GetRequestID gets the request ID from gin context
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// AccessLogger logs every request with latency and status.
func AccessLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int64("latencyMs", time.Since(start).Milliseconds()),
			zap.String("clientIP", c.ClientIP()),
			zap.String("requestId", GetRequestID(c)),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}

		switch {
		case status >= 500:
			utils.Zlog.Error("Request completed", fields...)
		case status >= 400:
			utils.Zlog.Warn("Request completed", fields...)
		default:
			utils.Zlog.Info("Request completed", fields...)
		}
	}
}

// Recovery turns panics into 500 responses instead of dropped connections.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				utils.Zlog.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("requestId", GetRequestID(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())))

				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
					Error:     "Internal server error",
					Message:   "unexpected failure, see logs for request " + GetRequestID(c),
					Timestamp: time.Now().UTC(),
				})
			}
		}()

		c.Next()
	}
}

// RateLimiter implements a fixed-window per-IP request counter.
type RateLimiter struct {
	mu        sync.Mutex
	contagens map[string]int
	lastReset time.Time
	rate      int
	window    time.Duration
}

func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		contagens: make(map[string]int),
		lastReset: time.Now(),
		rate:      rate,
		window:    window,
	}
}

// Allow reports whether another request from clientIP fits the window.
func (l *RateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastReset) > l.window {
		l.contagens = make(map[string]int)
		l.lastReset = time.Now()
	}

	if l.contagens[clientIP] >= l.rate {
		return false
	}
	l.contagens[clientIP]++
	return true
}

// RateLimit limits requests per client IP. This protects the service itself;
// pacing toward the upstream is the bulk orchestrator's job.
func RateLimit(rate int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(rate, window)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !limiter.Allow(clientIP) {
			utils.Zlog.Warn("Rate limit exceeded",
				zap.String("clientIP", clientIP),
				zap.String("requestId", GetRequestID(c)))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				Error:     "Too many requests",
				Message:   "limite de requisições excedido, tente novamente em instantes",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		c.Next()
	}
}
