package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"auth-gate/internal/domain"
	"auth-gate/internal/session"
	"auth-gate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionContext(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultSessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandler_SignedIn(t *testing.T) {
	provider := &stubProvider{
		identity: &domain.Identity{UserID: "user-123", Email: "coach@example.com", SessionID: "sess-abc"},
	}
	profiles := &stubProfileRepo{profile: &domain.Profile{ID: "user-123", FirstName: "Alma", Email: "coach@example.com"}}
	uc := usecase.NewGetCurrentUser(profiles, &stubIssuer{token: "signed.jwt"}, slog.Default())
	h := NewSessionHandler(uc, newSessionFactory(provider))

	c, rec := sessionContext("ory-token")

	require.NoError(t, h.Handle(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed.jwt", rec.Header().Get("X-Portal-Token"))
	assert.Empty(t, rec.Result().Cookies(), "session endpoint must not write cookies")

	var resp struct {
		OK   bool `json:"ok"`
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Profile *struct {
			FirstName string `json:"firstName"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "user-123", resp.User.ID)
	assert.Equal(t, "coach@example.com", resp.User.Email)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Alma", resp.Profile.FirstName)
}

func TestSessionHandler_NoProfileYet(t *testing.T) {
	provider := &stubProvider{
		identity: &domain.Identity{UserID: "user-123", Email: "coach@example.com", SessionID: "sess-abc"},
	}
	uc := usecase.NewGetCurrentUser(&stubProfileRepo{}, &stubIssuer{token: "signed.jwt"}, slog.Default())
	h := NewSessionHandler(uc, newSessionFactory(provider))

	c, rec := sessionContext("ory-token")

	require.NoError(t, h.Handle(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"profile":null`)
}

func TestSessionHandler_NotSignedIn(t *testing.T) {
	uc := usecase.NewGetCurrentUser(&stubProfileRepo{}, &stubIssuer{}, slog.Default())
	h := NewSessionHandler(uc, newSessionFactory(&stubProvider{}))

	c, _ := sessionContext("")

	err := h.Handle(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestSessionHandler_ExpiredSession(t *testing.T) {
	provider := &stubProvider{validateErr: domain.ErrAuthFailed}
	uc := usecase.NewGetCurrentUser(&stubProfileRepo{}, &stubIssuer{}, slog.Default())
	h := NewSessionHandler(uc, newSessionFactory(provider))

	c, _ := sessionContext("expired-token")

	err := h.Handle(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestSessionHandler_ProviderDown(t *testing.T) {
	provider := &stubProvider{validateErr: domain.ErrProviderUnavailable}
	uc := usecase.NewGetCurrentUser(&stubProfileRepo{}, &stubIssuer{}, slog.Default())
	h := NewSessionHandler(uc, newSessionFactory(provider))

	c, _ := sessionContext("ory-token")

	err := h.Handle(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
}
