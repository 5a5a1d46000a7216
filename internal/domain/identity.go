package domain

import "time"

// Identity represents an authenticated user identity from the identity provider.
type Identity struct {
	UserID    string
	Email     string
	SessionID string
	CreatedAt time.Time
}

// Profile is the portal-side user record keyed by the identity provider's
// user id. FirstName stays empty until the user completes onboarding.
type Profile struct {
	ID        string
	Email     string
	FirstName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionCredentials is the durable session material returned by a
// successful one-time code exchange.
type SessionCredentials struct {
	SessionToken string
	SessionID    string
}

// LoginFlow describes a freshly created provider login flow. The exchange
// init code must be presented together with the callback code to finish
// the sign-in.
type LoginFlow struct {
	FlowID           string
	ExchangeInitCode string
}

// CachedSession holds session data stored in the cache.
type CachedSession struct {
	UserID string
	Email  string
}
