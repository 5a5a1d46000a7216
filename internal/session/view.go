package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"auth-gate/internal/domain"
	"auth-gate/internal/infrastructure/cookie"
)

// ReadOnlyView reads the current session without the ability to mutate
// cookies. Implements domain.SessionReader.
type ReadOnlyView struct {
	cookies   cookie.Reader
	validator domain.SessionValidator
	cache     domain.SessionCache
	cfg       Config
}

// NewReadOnlyView creates a render-context session view.
func NewReadOnlyView(cookies cookie.Reader, validator domain.SessionValidator, cache domain.SessionCache, cfg Config) *ReadOnlyView {
	return &ReadOnlyView{
		cookies:   cookies,
		validator: validator,
		cache:     cache,
		cfg:       cfg.WithDefaults(),
	}
}

// GetCurrentUser returns the authenticated identity, or (nil, nil) when no
// valid session exists. Only provider unavailability is an error.
func (v *ReadOnlyView) GetCurrentUser(ctx context.Context) (*domain.Identity, error) {
	return currentUser(ctx, v.cookies, v.validator, v.cache, v.cfg)
}

// MutableView extends the read-only behavior with sign-in finalization and
// sign-out. Cookie writes are scheduled on the response that carries the
// redirect. Implements domain.SessionWriter and domain.SignInStarter.
type MutableView struct {
	cookies  cookie.Writer
	provider domain.ProviderGateway
	cache    domain.SessionCache
	cfg      Config
	logger   *slog.Logger
}

// NewMutableView creates a request-handler session view.
func NewMutableView(cookies cookie.Writer, provider domain.ProviderGateway, cache domain.SessionCache, cfg Config, logger *slog.Logger) *MutableView {
	return &MutableView{
		cookies:  cookies,
		provider: provider,
		cache:    cache,
		cfg:      cfg.WithDefaults(),
		logger:   logger,
	}
}

// GetCurrentUser behaves like the read-only view, but also sees a session
// cookie scheduled earlier in the same request (the cookie bridge surfaces
// pending writes), so the gate can re-fetch the user right after exchange.
func (v *MutableView) GetCurrentUser(ctx context.Context) (*domain.Identity, error) {
	return currentUser(ctx, v.cookies, v.provider, v.cache, v.cfg)
}

// BeginSignIn creates a provider login flow and stashes its exchange init
// code in a short-lived cookie scoped to the auth flow.
func (v *MutableView) BeginSignIn(ctx context.Context) (string, error) {
	flow, err := v.provider.StartLoginFlow(ctx)
	if err != nil {
		return "", err
	}
	if err := v.cookies.Set(v.cfg.InitCookie, flow.ExchangeInitCode, v.cfg.initCookieOptions()); err != nil {
		return "", err
	}
	return flow.FlowID, nil
}

// ExchangeCodeForSession trades the callback code for a session and
// schedules the session cookie. The init cookie is consumed either way.
func (v *MutableView) ExchangeCodeForSession(ctx context.Context, code string) error {
	initCode, _ := v.cookies.Get(v.cfg.InitCookie)

	creds, err := v.provider.ExchangeCode(ctx, initCode, code)
	if err != nil {
		return err
	}

	if err := v.cookies.Set(v.cfg.SessionCookie, creds.SessionToken, v.cfg.sessionCookieOptions()); err != nil {
		return fmt.Errorf("schedule session cookie: %w", err)
	}
	if err := v.cookies.Remove(v.cfg.InitCookie, v.cfg.initCookieOptions()); err != nil {
		return fmt.Errorf("consume init cookie: %w", err)
	}
	return nil
}

// SignOut revokes the provider session (best effort) and clears every
// session-related cookie. Calling it with no active session is a no-op
// that still clears cookies.
func (v *MutableView) SignOut(ctx context.Context) error {
	if token, ok := v.cookies.Get(v.cfg.SessionCookie); ok {
		if err := v.provider.RevokeSession(ctx, token); err != nil {
			v.logger.WarnContext(ctx, "session revocation failed, clearing cookies anyway", "error", err)
		}
		v.cache.Delete(token)
	}

	for _, name := range []string{v.cfg.SessionCookie, v.cfg.MirrorCookie} {
		if err := v.cookies.Remove(name, v.cfg.sessionCookieOptions()); err != nil {
			return fmt.Errorf("clear cookie %s: %w", name, err)
		}
	}
	if err := v.cookies.Remove(v.cfg.InitCookie, v.cfg.initCookieOptions()); err != nil {
		return fmt.Errorf("clear cookie %s: %w", v.cfg.InitCookie, err)
	}
	return nil
}

// SetMirrorCookie schedules the signed mirror token alongside the session.
func (v *MutableView) SetMirrorCookie(token string) error {
	return v.cookies.Set(v.cfg.MirrorCookie, token, v.cfg.mirrorCookieOptions())
}

// currentUser is the shared cache-through lookup behind both views.
func currentUser(ctx context.Context, cookies cookie.Reader, validator domain.SessionValidator, cache domain.SessionCache, cfg Config) (*domain.Identity, error) {
	token, ok := cookies.Get(cfg.SessionCookie)
	if !ok || token == "" {
		return nil, nil
	}

	if cached, found := cache.Get(token); found {
		return &domain.Identity{
			UserID:    cached.UserID,
			Email:     cached.Email,
			SessionID: token,
		}, nil
	}

	identity, err := validator.ValidateSession(ctx, token)
	if err != nil {
		// An invalid or expired session reads as "no user", the same as a
		// missing cookie. Provider unavailability stays an error.
		if errors.Is(err, domain.ErrAuthFailed) ||
			errors.Is(err, domain.ErrSessionExpired) ||
			errors.Is(err, domain.ErrSessionInactive) ||
			errors.Is(err, domain.ErrSessionNotFound) ||
			errors.Is(err, domain.ErrMissingIdentity) {
			return nil, nil
		}
		return nil, err
	}

	cache.Set(token, domain.CachedSession{
		UserID: identity.UserID,
		Email:  identity.Email,
	})

	return identity, nil
}
