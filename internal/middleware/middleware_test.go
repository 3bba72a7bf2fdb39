package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikosDal/fyyur-01/internal/config"
)

func testLimitConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            5 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
}

func newLimitedEcho(cfg config.RateLimitConfig) *echo.Echo {
	e := echo.New()
	e.POST("/venues/create", func(c echo.Context) error { return c.String(http.StatusOK, "created") },
		NewRateLimiter(cfg, nil))
	return e
}

func post(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/venues/create", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLocalRateLimiterBlocksAfterCapacity(t *testing.T) {
	e := newLimitedEcho(testLimitConfig())

	assert.Equal(t, http.StatusOK, post(e, "10.0.0.1").Code)
	second := post(e, "10.0.0.1")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "2", second.Header().Get("X-RateLimit-Limit"))

	blocked := post(e, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	retry, err := strconv.Atoi(blocked.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retry, 0)
	assert.LessOrEqual(t, retry, 3600)

	assert.Equal(t, http.StatusOK, post(e, "10.0.0.2").Code, "buckets are per client")
}

func TestDisabledRateLimiterPassesThrough(t *testing.T) {
	cfg := testLimitConfig()
	cfg.Enabled = false
	e := newLimitedEcho(cfg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, post(e, "10.0.0.1").Code)
	}
}

func TestLocalBucketForgetsIdleKeys(t *testing.T) {
	b := newLocalBucket(testLimitConfig())
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := b.take(context.Background(), "a", start)
	require.NoError(t, err)
	_, err = b.take(context.Background(), "b", start.Add(6*time.Hour))
	require.NoError(t, err)

	assert.NotContains(t, b.limiters, "a")
	assert.Contains(t, b.limiters, "b")
}

func TestDecisionFrom(t *testing.T) {
	d, err := decisionFrom([]any{int64(0), int64(0), int64(1500)})
	require.NoError(t, err)
	assert.False(t, d.allowed)
	assert.Equal(t, 1500*time.Millisecond, d.retryAfter)

	d, err = decisionFrom([]any{"1", int64(4), int64(0)})
	require.NoError(t, err)
	assert.True(t, d.allowed)
	assert.Equal(t, int64(4), d.remaining)

	_, err = decisionFrom("OK")
	assert.Error(t, err)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/venues/3/edit", nil)
	req.Header.Set(echo.HeaderXRealIP, "192.0.2.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/venues/:id/edit")

	cfg := testLimitConfig()
	assert.Equal(t, "rl:ip:192.0.2.7:route:POST /venues/:id/edit", buildRateKey(cfg, c))
	cfg.KeyStrategy = "IP"
	assert.Equal(t, "rl:ip:192.0.2.7", buildRateKey(cfg, c))
	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:POST /venues/:id/edit", buildRateKey(cfg, c))
}

func TestRequestLoggerLogsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	e := echo.New()
	e.Use(RequestID(), RequestLogger())
	e.GET("/venues/:id", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues/9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warning", line["level"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, "/venues/9", line["path"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), line["request_id"])
	assert.Len(t, line["request_id"], 36)
}
