package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JusFlow/datajud-service/internal/types"
)

func routerComMiddleware(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	for _, h := range handlers {
		router.Use(h)
	}
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func TestRequestID(t *testing.T) {
	t.Run("generates_an_id_when_absent", func(t *testing.T) {
		router := routerComMiddleware(RequestID())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "generated IDs are UUIDs")
	})

	t.Run("honors_the_incoming_id", func(t *testing.T) {
		router := routerComMiddleware(RequestID())

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "upstream-id-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-id-123", rec.Header().Get("X-Request-ID"))
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("something broke")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error)
}

func TestRateLimit(t *testing.T) {
	t.Run("requests_over_the_limit_get_429", func(t *testing.T) {
		router := routerComMiddleware(RequestID(), RateLimit(3, time.Minute))

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
		}

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("limits_are_per_ip", func(t *testing.T) {
		router := routerComMiddleware(RateLimit(1, time.Minute))

		primeira := httptest.NewRequest(http.MethodGet, "/ping", nil)
		primeira.RemoteAddr = "10.0.0.1:1000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, primeira)
		require.Equal(t, http.StatusOK, rec.Code)

		segunda := httptest.NewRequest(http.MethodGet, "/ping", nil)
		segunda.RemoteAddr = "10.0.0.1:1000"
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, segunda)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		outroIP := httptest.NewRequest(http.MethodGet, "/ping", nil)
		outroIP.RemoteAddr = "10.0.0.2:1000"
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, outroIP)
		assert.Equal(t, http.StatusOK, rec.Code, "a different IP keeps its own quota")
	})

	t.Run("window_reset_restores_the_quota", func(t *testing.T) {
		limiter := NewRateLimiter(1, 20*time.Millisecond)

		require.True(t, limiter.Allow("10.0.0.9"))
		require.False(t, limiter.Allow("10.0.0.9"))

		time.Sleep(30 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.9"))
	})
}

func TestAccessLoggerPassesThrough(t *testing.T) {
	router := routerComMiddleware(RequestID(), AccessLogger())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
