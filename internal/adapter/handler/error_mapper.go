package handler

import (
	"errors"
	"net/http"

	"auth-gate/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapAuthError converts a gate error into the redirect the browser should
// follow. Every failure lands back on the sign-in page with a short error
// marker; the markers keep the failure classes distinguishable in logs.
func mapAuthError(err error) domain.RedirectTarget {
	switch {
	case errors.Is(err, domain.ErrMissingAuthCode):
		return domain.SignInTarget("missing_code")

	case errors.Is(err, domain.ErrNoSessionAfterExchange):
		return domain.SignInTarget("2")

	case errors.Is(err, domain.ErrAuthExchange),
		errors.Is(err, domain.ErrProviderUnavailable):
		return domain.SignInTarget("1")

	default:
		return domain.SignInTarget("1")
	}
}

// mapSessionError converts a domain error into an appropriate
// echo.HTTPError for the JSON endpoints.
func mapSessionError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrAuthFailed),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrSessionInactive),
		errors.Is(err, domain.ErrMissingIdentity):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrProviderUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")

	case errors.Is(err, domain.ErrTokenGeneration):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
