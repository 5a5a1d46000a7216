package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"auth-gate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTokenIssuer implements domain.TokenIssuer for testing.
type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) IssueMirrorToken(_ *domain.Identity) (string, error) {
	return m.token, m.err
}

func TestGetCurrentUser_NoSession(t *testing.T) {
	sess := &mockSession{} // GetCurrentUser returns (nil, nil)
	uc := NewGetCurrentUser(&mockProfileRepo{}, &mockTokenIssuer{}, slog.Default())

	result, err := uc.Execute(context.Background(), sess)

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestGetCurrentUser_SignedIn(t *testing.T) {
	sess := signedInSession()
	profiles := &mockProfileRepo{profile: namedProfile()}
	issuer := &mockTokenIssuer{token: "signed.jwt.token"}
	uc := NewGetCurrentUser(profiles, issuer, slog.Default())

	result, err := uc.Execute(context.Background(), sess)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "user-123", result.Identity.UserID)
	assert.Equal(t, "Alma", result.Profile.FirstName)
	assert.Equal(t, "signed.jwt.token", result.MirrorToken)
}

func TestGetCurrentUser_ProfileReadFailureTolerated(t *testing.T) {
	sess := signedInSession()
	profiles := &mockProfileRepo{getErr: errors.New("connection refused")}
	issuer := &mockTokenIssuer{token: "signed.jwt.token"}
	uc := NewGetCurrentUser(profiles, issuer, slog.Default())

	result, err := uc.Execute(context.Background(), sess)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, result.Profile)
	assert.Equal(t, "signed.jwt.token", result.MirrorToken)
}

func TestGetCurrentUser_TokenFailure(t *testing.T) {
	sess := signedInSession()
	issuer := &mockTokenIssuer{err: errors.New("empty secret")}
	uc := NewGetCurrentUser(&mockProfileRepo{}, issuer, slog.Default())

	result, err := uc.Execute(context.Background(), sess)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrTokenGeneration))
}

func TestGetCurrentUser_SessionError(t *testing.T) {
	sess := &mockSession{userErr: domain.ErrProviderUnavailable}
	uc := NewGetCurrentUser(&mockProfileRepo{}, &mockTokenIssuer{}, slog.Default())

	result, err := uc.Execute(context.Background(), sess)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}
