package handler

import (
	"net/http"
	"time"

	"auth-gate/internal/session"
	"auth-gate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// mirrorTokenHeader carries the signed mirror token to the frontend, which
// forwards it to downstream content services.
const mirrorTokenHeader = "X-Portal-Token"

// SessionHandler handles /session, the JSON surface content pages consume.
// It uses the read-only session view: rendering a page must never mutate
// cookies.
type SessionHandler struct {
	uc       *usecase.GetCurrentUser
	sessions *session.Factory
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(uc *usecase.GetCurrentUser, sessions *session.Factory) *SessionHandler {
	return &SessionHandler{uc: uc, sessions: sessions}
}

// sessionUser represents the user object in the response.
type sessionUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// sessionProfile represents the profile object in the response. Null when
// the profile row has not been created yet.
type sessionProfile struct {
	FirstName string    `json:"firstName"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// sessionResponse represents the JSON response structure.
type sessionResponse struct {
	OK      bool            `json:"ok"`
	User    sessionUser     `json:"user"`
	Profile *sessionProfile `json:"profile"`
}

// Handle processes the /session endpoint and returns JSON.
func (h *SessionHandler) Handle(c echo.Context) error {
	sess := h.sessions.ReadOnly(c.Request())

	result, err := h.uc.Execute(c.Request().Context(), sess)
	if err != nil {
		return mapSessionError(err)
	}
	if result == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	c.Response().Header().Set(mirrorTokenHeader, result.MirrorToken)

	resp := sessionResponse{
		OK: true,
		User: sessionUser{
			ID:        result.Identity.UserID,
			Email:     result.Identity.Email,
			CreatedAt: result.Identity.CreatedAt,
		},
	}
	if result.Profile != nil {
		resp.Profile = &sessionProfile{
			FirstName: result.Profile.FirstName,
			Email:     result.Profile.Email,
			UpdatedAt: result.Profile.UpdatedAt,
		}
	}

	return c.JSON(http.StatusOK, resp)
}
