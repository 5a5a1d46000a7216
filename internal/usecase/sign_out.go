package usecase

import (
	"context"
	"log/slog"

	"auth-gate/internal/domain"
)

// SignOut clears the session. Idempotent: with no active session it still
// succeeds and the handler still redirects.
type SignOut struct {
	logger *slog.Logger
}

// NewSignOut creates a new SignOut usecase.
func NewSignOut(l *slog.Logger) *SignOut {
	return &SignOut{logger: l}
}

// Execute signs the user out through the given session view.
func (uc *SignOut) Execute(ctx context.Context, sess domain.SessionWriter) error {
	if err := sess.SignOut(ctx); err != nil {
		return err
	}
	uc.logger.InfoContext(ctx, "user signed out")
	return nil
}
