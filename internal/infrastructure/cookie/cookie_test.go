package cookie

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auth-gate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithCookie(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: name, Value: value})
	return req
}

func TestReadOnlyView_Get(t *testing.T) {
	v := NewReadOnlyView(requestWithCookie("portal_session", "token-abc"))

	value, ok := v.Get("portal_session")
	assert.True(t, ok)
	assert.Equal(t, "token-abc", value)

	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestReadOnlyView_RejectsWrites(t *testing.T) {
	v := NewReadOnlyView(httptest.NewRequest(http.MethodGet, "/", nil))

	err := v.Set("portal_session", "token", Options{})
	assert.True(t, errors.Is(err, domain.ErrReadOnlyCookieContext))

	err = v.Remove("portal_session", Options{})
	assert.True(t, errors.Is(err, domain.ErrReadOnlyCookieContext))
}

func TestMutableView_SetSchedulesCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	v := NewMutableView(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := v.Set("portal_session", "token-abc", Options{
		MaxAge:   3600,
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "portal_session", c.Name)
	assert.Equal(t, "token-abc", c.Value)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestMutableView_GetSeesPendingWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	v := NewMutableView(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_, ok := v.Get("portal_session")
	require.False(t, ok)

	require.NoError(t, v.Set("portal_session", "fresh-token", Options{Path: "/"}))

	value, ok := v.Get("portal_session")
	assert.True(t, ok)
	assert.Equal(t, "fresh-token", value, "a write within the request must be readable before the response is sent")
}

func TestMutableView_PendingWriteShadowsRequestCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	v := NewMutableView(requestWithCookie("portal_session", "stale-token"), rec)

	require.NoError(t, v.Set("portal_session", "fresh-token", Options{Path: "/"}))

	value, ok := v.Get("portal_session")
	assert.True(t, ok)
	assert.Equal(t, "fresh-token", value)
}

func TestMutableView_RemoveExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	v := NewMutableView(requestWithCookie("portal_auth_init", "init-code"), rec)

	require.NoError(t, v.Remove("portal_auth_init", Options{Path: "/auth"}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_auth_init", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)

	_, ok := v.Get("portal_auth_init")
	assert.False(t, ok, "a removed cookie must not be readable within the request")
}
