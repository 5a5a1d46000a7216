package handler

import (
	"net/http"

	"auth-gate/internal/session"
	"auth-gate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ValidateHandler handles /validate for nginx auth_request: 200 plus
// identity headers for a valid session, 401 otherwise. Header-only, no
// body, no cookie writes.
type ValidateHandler struct {
	uc       *usecase.GetCurrentUser
	sessions *session.Factory
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(uc *usecase.GetCurrentUser, sessions *session.Factory) *ValidateHandler {
	return &ValidateHandler{uc: uc, sessions: sessions}
}

// Handle processes the /validate endpoint.
func (h *ValidateHandler) Handle(c echo.Context) error {
	sess := h.sessions.ReadOnly(c.Request())

	result, err := h.uc.Execute(c.Request().Context(), sess)
	if err != nil {
		return mapSessionError(err)
	}
	if result == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	c.Response().Header().Set("X-Portal-User-Id", result.Identity.UserID)
	c.Response().Header().Set("X-Portal-User-Email", result.Identity.Email)
	c.Response().Header().Set(mirrorTokenHeader, result.MirrorToken)
	return c.NoContent(http.StatusOK)
}
