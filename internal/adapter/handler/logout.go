package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"auth-gate/internal/domain"
	"auth-gate/internal/session"
	"auth-gate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LogoutHandler handles GET|POST /logout: clear cookies, then redirect to
// the sign-in page or a configured marketing URL.
type LogoutHandler struct {
	uc          *usecase.SignOut
	sessions    *session.Factory
	baseURL     string
	redirectURL string
}

// NewLogoutHandler creates a new logout handler. redirectURL may be a
// relative path or an absolute configured URL; empty falls back to the
// sign-in page.
func NewLogoutHandler(uc *usecase.SignOut, sessions *session.Factory, baseURL, redirectURL string) *LogoutHandler {
	return &LogoutHandler{uc: uc, sessions: sessions, baseURL: baseURL, redirectURL: redirectURL}
}

// Handle processes the logout request.
func (h *LogoutHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	sess := h.sessions.Mutable(c.Request(), c.Response())

	if err := h.uc.Execute(ctx, sess); err != nil {
		// Cookie clearing is local; failures here are unexpected. Still
		// send the user somewhere sensible.
		slog.ErrorContext(ctx, "sign-out failed", "error", err)
	}

	return c.Redirect(http.StatusFound, h.destination())
}

func (h *LogoutHandler) destination() string {
	dest := h.redirectURL
	if dest == "" {
		dest = "/auth/sign-in"
	}
	if strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://") {
		return dest
	}
	return resolveTarget(h.baseURL, domain.PathTarget(dest))
}
