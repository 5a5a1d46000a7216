// Package session implements the session client in two capability-tagged
// flavors: a read-only view for render-style contexts and a mutable view
// for request handlers that may finalize a sign-in or sign the user out.
package session

import (
	"net/http"
	"time"

	"auth-gate/internal/infrastructure/cookie"
)

// Default cookie names. The session cookie carries the provider session
// token; the init cookie carries the exchange init code between sign-in
// start and the magic-link callback; the mirror cookie carries the signed
// token downstream services verify.
const (
	DefaultSessionCookie = "portal_session"
	DefaultInitCookie    = "portal_auth_init"
	DefaultMirrorCookie  = "portal_token"
)

// Config carries cookie naming and attributes for the session views.
type Config struct {
	SessionCookie string
	InitCookie    string
	MirrorCookie  string
	CookieDomain  string
	CookieSecure  bool
	SessionTTL    time.Duration
	InitTTL       time.Duration
}

// WithDefaults fills unset fields with the default cookie names and TTLs.
func (c Config) WithDefaults() Config {
	if c.SessionCookie == "" {
		c.SessionCookie = DefaultSessionCookie
	}
	if c.InitCookie == "" {
		c.InitCookie = DefaultInitCookie
	}
	if c.MirrorCookie == "" {
		c.MirrorCookie = DefaultMirrorCookie
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 30 * 24 * time.Hour
	}
	if c.InitTTL <= 0 {
		c.InitTTL = 15 * time.Minute
	}
	return c
}

func (c Config) sessionCookieOptions() cookie.Options {
	return cookie.Options{
		MaxAge:   int(c.SessionTTL / time.Second),
		Path:     "/",
		Domain:   c.CookieDomain,
		Secure:   c.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Init cookie is scoped to the auth flow and short-lived; it only needs to
// survive the round trip through the user's inbox.
func (c Config) initCookieOptions() cookie.Options {
	return cookie.Options{
		MaxAge:   int(c.InitTTL / time.Second),
		Path:     "/auth",
		Domain:   c.CookieDomain,
		Secure:   c.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c Config) mirrorCookieOptions() cookie.Options {
	return cookie.Options{
		MaxAge:   int(c.SessionTTL / time.Second),
		Path:     "/",
		Domain:   c.CookieDomain,
		Secure:   c.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
