package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"auth-gate/internal/domain"
)

// CurrentUserResult holds the data returned by GetCurrentUser.
type CurrentUserResult struct {
	Identity    *domain.Identity
	Profile     *domain.Profile
	MirrorToken string
}

// GetCurrentUser resolves the signed-in user plus their profile for
// content pages, and mints the mirror token downstream services verify.
type GetCurrentUser struct {
	profiles domain.ProfileRepository
	token    domain.TokenIssuer
	logger   *slog.Logger
}

// NewGetCurrentUser creates a new GetCurrentUser usecase.
func NewGetCurrentUser(p domain.ProfileRepository, t domain.TokenIssuer, l *slog.Logger) *GetCurrentUser {
	return &GetCurrentUser{profiles: p, token: t, logger: l}
}

// Execute resolves the current user through the given session view.
// Returns (nil, nil) when no session exists.
func (uc *GetCurrentUser) Execute(ctx context.Context, sess domain.SessionReader) (*CurrentUserResult, error) {
	identity, err := sess.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, nil
	}

	// Profile is informational here; content pages re-check it themselves.
	profile, err := uc.profiles.GetByID(ctx, identity.UserID)
	if err != nil {
		uc.logger.WarnContext(ctx, "profile read failed", "user_id", identity.UserID, "error", err)
		profile = nil
	}

	mirror, err := uc.token.IssueMirrorToken(identity)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to issue mirror token", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}

	return &CurrentUserResult{
		Identity:    identity,
		Profile:     profile,
		MirrorToken: mirror,
	}, nil
}
