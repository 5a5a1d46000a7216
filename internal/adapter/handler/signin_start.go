package handler

import (
	"net/http"

	"auth-gate/internal/session"
	"auth-gate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SignInStartHandler handles POST /auth/sign-in/start. It creates the
// provider login flow and stashes the exchange init code in a short-lived
// cookie; the sign-in page uses the returned flow id to submit the email.
type SignInStartHandler struct {
	uc       *usecase.StartSignIn
	sessions *session.Factory
}

// NewSignInStartHandler creates a new sign-in start handler.
func NewSignInStartHandler(uc *usecase.StartSignIn, sessions *session.Factory) *SignInStartHandler {
	return &SignInStartHandler{uc: uc, sessions: sessions}
}

// startResponse represents the JSON response structure.
type startResponse struct {
	FlowID string `json:"flow_id"`
}

// Handle processes the sign-in start request.
func (h *SignInStartHandler) Handle(c echo.Context) error {
	sess := h.sessions.Mutable(c.Request(), c.Response())

	flowID, err := h.uc.Execute(c.Request().Context(), sess)
	if err != nil {
		return mapSessionError(err)
	}

	return c.JSON(http.StatusOK, startResponse{FlowID: flowID})
}
