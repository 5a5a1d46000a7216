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

// CallbackHandler handles GET /auth/callback, the magic-link return leg.
// It is the boundary adapter around the gate: the usecase decides, this
// handler issues the HTTP redirect. Session cookies scheduled during the
// exchange travel on the same response as the Location header.
type CallbackHandler struct {
	uc       *usecase.AuthCallback
	sessions *session.Factory
	baseURL  string
}

// NewCallbackHandler creates a new callback handler. baseURL may be empty,
// in which case redirects stay relative.
func NewCallbackHandler(uc *usecase.AuthCallback, sessions *session.Factory, baseURL string) *CallbackHandler {
	return &CallbackHandler{uc: uc, sessions: sessions, baseURL: baseURL}
}

// Handle processes the callback and always answers with a redirect.
func (h *CallbackHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.QueryParam("code")
	redirectParam := c.QueryParam("redirect")

	sess := h.sessions.Mutable(c.Request(), c.Response())

	target, err := h.uc.Execute(ctx, sess, code, redirectParam)
	if err != nil {
		slog.WarnContext(ctx, "auth callback failed", "error", err)
		target = mapAuthError(err)
	}

	return c.Redirect(http.StatusFound, resolveTarget(h.baseURL, target))
}

// resolveTarget turns a relative redirect decision into an absolute URL
// when a site base URL is configured.
func resolveTarget(baseURL string, target domain.RedirectTarget) string {
	if baseURL == "" {
		return target.Path
	}
	return strings.TrimRight(baseURL, "/") + target.Path
}
