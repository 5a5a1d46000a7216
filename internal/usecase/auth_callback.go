package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"auth-gate/internal/domain"

	"github.com/google/uuid"
)

// AuthCallback orchestrates the magic-link callback: it exchanges the
// one-time code for a session, ensures a profile row exists and decides
// where the browser goes next.
//
// Routing rule: a profile with no first name goes to profile completion; a
// named profile with zero assessments goes to the dashboard with the
// welcome marker; everyone else lands on the dashboard or, when supplied
// and safe, the requested path.
type AuthCallback struct {
	profiles    domain.ProfileRepository
	assessments domain.AssessmentCounter
	token       domain.TokenIssuer
	logger      *slog.Logger
}

// NewAuthCallback creates a new AuthCallback usecase.
func NewAuthCallback(p domain.ProfileRepository, a domain.AssessmentCounter, t domain.TokenIssuer, l *slog.Logger) *AuthCallback {
	return &AuthCallback{profiles: p, assessments: a, token: t, logger: l}
}

// Execute runs the gate and returns the redirect decision. Failures come
// back as errors; the boundary adapter maps them to failure redirects so
// the user always gets a next action instead of a 500.
//
// Profile writes are best effort: a failed upsert or read is logged and
// the user is routed as first-time, letting the onboarding pages re-ensure
// the profile on next load.
func (uc *AuthCallback) Execute(ctx context.Context, sess domain.SessionWriter, code, redirectParam string) (domain.RedirectTarget, error) {
	if code == "" {
		return domain.RedirectTarget{}, domain.ErrMissingAuthCode
	}

	if err := sess.ExchangeCodeForSession(ctx, code); err != nil {
		return domain.RedirectTarget{}, err
	}

	identity, err := sess.GetCurrentUser(ctx)
	if err != nil {
		return domain.RedirectTarget{}, fmt.Errorf("%w: %w", domain.ErrNoSessionAfterExchange, err)
	}
	if identity == nil {
		return domain.RedirectTarget{}, domain.ErrNoSessionAfterExchange
	}

	decisionID := uuid.NewString()

	// The mirror cookie is a convenience for downstream services; the
	// session endpoint re-issues the token on every read, so a failed
	// mint here must not fail the sign-in.
	if mirror, err := uc.token.IssueMirrorToken(identity); err != nil {
		uc.logger.WarnContext(ctx, "mirror token mint failed, continuing",
			"decision_id", decisionID,
			"user_id", identity.UserID,
			"error", err)
	} else if err := sess.SetMirrorCookie(mirror); err != nil {
		uc.logger.WarnContext(ctx, "mirror cookie write failed, continuing",
			"decision_id", decisionID,
			"user_id", identity.UserID,
			"error", err)
	}

	if err := uc.profiles.Upsert(ctx, identity.UserID, identity.Email); err != nil {
		uc.logger.WarnContext(ctx, "profile upsert failed, continuing",
			"decision_id", decisionID,
			"user_id", identity.UserID,
			"error", err)
	}

	profile, err := uc.profiles.GetByID(ctx, identity.UserID)
	if err != nil {
		uc.logger.WarnContext(ctx, "profile read failed, routing as first-time",
			"decision_id", decisionID,
			"user_id", identity.UserID,
			"error", err)
		profile = nil
	}

	if profile == nil || strings.TrimSpace(profile.FirstName) == "" {
		uc.logDecision(ctx, decisionID, identity.UserID, "onboarding")
		return domain.OnboardingTarget(), nil
	}

	count, err := uc.assessments.CountByUser(ctx, identity.UserID)
	if err != nil {
		uc.logger.WarnContext(ctx, "assessment count failed, treating as zero",
			"decision_id", decisionID,
			"user_id", identity.UserID,
			"error", err)
		count = 0
	}
	if count == 0 {
		uc.logDecision(ctx, decisionID, identity.UserID, "welcome")
		return domain.DashboardFirstTarget(), nil
	}

	if redirectParam != "" {
		if domain.SafeRedirectPath(redirectParam) {
			uc.logDecision(ctx, decisionID, identity.UserID, "redirect")
			return domain.PathTarget(redirectParam), nil
		}
		// Unsafe targets are silently dropped, never surfaced to the user.
		uc.logger.WarnContext(ctx, "ignoring unsafe redirect parameter",
			"decision_id", decisionID,
			"user_id", identity.UserID,
			"redirect", redirectParam)
	}

	uc.logDecision(ctx, decisionID, identity.UserID, "dashboard")
	return domain.DashboardTarget(), nil
}

func (uc *AuthCallback) logDecision(ctx context.Context, decisionID, userID, route string) {
	uc.logger.InfoContext(ctx, "auth callback routed",
		"decision_id", decisionID,
		"user_id", userID,
		"route", route)
}
