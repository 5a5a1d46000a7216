package domain

import "context"

// SessionValidator validates a session token against the identity provider.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionToken string) (*Identity, error)
}

// LoginFlowStarter creates a provider login flow carrying a session token
// exchange code.
type LoginFlowStarter interface {
	StartLoginFlow(ctx context.Context) (*LoginFlow, error)
}

// CodeExchanger trades a one-time callback code (plus the init code issued
// when the flow started) for durable session credentials.
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, initCode, returnToCode string) (*SessionCredentials, error)
}

// SessionRevoker invalidates a session server-side.
type SessionRevoker interface {
	RevokeSession(ctx context.Context, sessionToken string) error
}

// ProviderGateway bundles the identity provider operations the session
// views need.
type ProviderGateway interface {
	LoginFlowStarter
	CodeExchanger
	SessionValidator
	SessionRevoker
}

// SessionCache provides read/write access to cached session data.
type SessionCache interface {
	Get(sessionToken string) (*CachedSession, bool)
	Set(sessionToken string, session CachedSession)
	Delete(sessionToken string)
}

// TokenIssuer generates signed mirror tokens for downstream services.
type TokenIssuer interface {
	IssueMirrorToken(identity *Identity) (string, error)
}

// ProfileRepository persists portal profiles keyed by user id.
type ProfileRepository interface {
	// Upsert creates the profile row or refreshes its email. It must be
	// idempotent and must not touch user-edited fields such as first_name.
	Upsert(ctx context.Context, id, email string) error
	// GetByID returns the profile for id, or nil when no row exists.
	GetByID(ctx context.Context, id string) (*Profile, error)
}

// AssessmentCounter reads the assessment-completion indicator.
type AssessmentCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// SessionReader is the render-context view of the session client.
// GetCurrentUser returns (nil, nil) when no session is present; absence is
// a normal result, not an error.
type SessionReader interface {
	GetCurrentUser(ctx context.Context) (*Identity, error)
}

// SessionWriter is the request-handling view of the session client. Only
// this view can finalize a sign-in or sign the user out, because both
// require writing cookies onto the outgoing response.
type SessionWriter interface {
	SessionReader
	ExchangeCodeForSession(ctx context.Context, code string) error
	SignOut(ctx context.Context) error
	SetMirrorCookie(token string) error
}

// SignInStarter begins a sign-in by creating a login flow and stashing its
// exchange init code client-side.
type SignInStarter interface {
	BeginSignIn(ctx context.Context) (flowID string, err error)
}
