package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func limitedEcho(rl *RateLimiter) *echo.Echo {
	e := echo.New()
	e.Use(rl.Middleware())
	e.GET("/auth/callback", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func hit(e *echo.Echo, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	e := limitedEcho(NewRateLimiter(rate.Limit(10), 10))

	rec := hit(e, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	// burst 1, so the immediate second request is over the limit
	e := limitedEcho(NewRateLimiter(rate.Limit(1), 1))

	assert.Equal(t, http.StatusOK, hit(e, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(e, "").Code)
}

func TestRateLimiter_RetryAfterHeader(t *testing.T) {
	e := limitedEcho(NewRateLimiter(rate.Limit(1), 1))

	hit(e, "")
	rec := hit(e, "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentIPsGetSeparateLimits(t *testing.T) {
	e := limitedEcho(NewRateLimiter(rate.Limit(1), 1))

	assert.Equal(t, http.StatusOK, hit(e, "1.2.3.4:1234").Code)
	assert.Equal(t, http.StatusOK, hit(e, "5.6.7.8:5678").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(e, "1.2.3.4:1234").Code)
}
