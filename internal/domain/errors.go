package domain

import "errors"

// Callback gate errors.
var (
	ErrMissingAuthCode        = errors.New("authorization code missing")
	ErrAuthExchange           = errors.New("code exchange rejected")
	ErrNoSessionAfterExchange = errors.New("no session visible after exchange")
	ErrProfileWrite           = errors.New("profile write failed")
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrSessionInactive = errors.New("session is not active")
	ErrMissingIdentity = errors.New("missing identity in session")
)

// Cookie bridge errors.
var (
	// ErrReadOnlyCookieContext is returned when a cookie write is attempted
	// from a context that only holds the inbound request. Render-style
	// contexts may read cookies but never finalize a sign-in.
	ErrReadOnlyCookieContext = errors.New("cookie write in read-only context")
)

// External service errors.
var (
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Token errors.
var (
	ErrTokenGeneration = errors.New("token generation failed")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)
