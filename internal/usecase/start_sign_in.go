package usecase

import (
	"context"
	"log/slog"

	"auth-gate/internal/domain"
)

// StartSignIn begins a sign-in by creating a provider login flow. The
// session view stashes the exchange init code that the callback needs.
type StartSignIn struct {
	logger *slog.Logger
}

// NewStartSignIn creates a new StartSignIn usecase.
func NewStartSignIn(l *slog.Logger) *StartSignIn {
	return &StartSignIn{logger: l}
}

// Execute creates the login flow and returns its id for the sign-in page.
func (uc *StartSignIn) Execute(ctx context.Context, sess domain.SignInStarter) (string, error) {
	flowID, err := sess.BeginSignIn(ctx)
	if err != nil {
		return "", err
	}
	uc.logger.InfoContext(ctx, "login flow started", "flow_id", flowID)
	return flowID, nil
}
