package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"auth-gate/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

// KratosGateway implements domain.ProviderGateway against the Ory Kratos
// frontend API.
type KratosGateway struct {
	client *kratos.APIClient
}

// NewKratosGateway creates a new Kratos gateway with tuned HTTP transport.
func NewKratosGateway(baseURL string, timeout time.Duration) *KratosGateway {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: baseURL},
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	configuration.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	return &KratosGateway{
		client: kratos.NewAPIClient(configuration),
	}
}

// StartLoginFlow creates a login flow that carries a session token exchange
// code. The init code must be stashed client-side and presented again when
// the magic-link callback returns.
func (g *KratosGateway) StartLoginFlow(ctx context.Context) (*domain.LoginFlow, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	flow, resp, err := g.client.FrontendAPI.CreateNativeLoginFlow(ctx).
		ReturnSessionTokenExchangeCode(true).
		Execute()
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	initCode := flow.GetSessionTokenExchangeCode()
	if initCode == "" {
		return nil, fmt.Errorf("%w: login flow carries no exchange code", domain.ErrProviderUnavailable)
	}

	return &domain.LoginFlow{
		FlowID:           flow.Id,
		ExchangeInitCode: initCode,
	}, nil
}

// ExchangeCode trades the callback code plus the stashed init code for a
// session token. A rejected, expired or already consumed code surfaces as
// ErrAuthExchange; it is not retryable within the request.
func (g *KratosGateway) ExchangeCode(ctx context.Context, initCode, returnToCode string) (*domain.SessionCredentials, error) {
	if initCode == "" || returnToCode == "" {
		return nil, fmt.Errorf("%w: exchange codes missing", domain.ErrAuthExchange)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	login, resp, err := g.client.FrontendAPI.ExchangeSessionToken(ctx).
		InitCode(initCode).
		ReturnToCode(returnToCode).
		Execute()
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusForbidden, http.StatusNotFound, http.StatusGone, http.StatusBadRequest:
				return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrAuthExchange, resp.StatusCode)
			}
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	sessionToken := login.GetSessionToken()
	if sessionToken == "" {
		return nil, fmt.Errorf("%w: exchange returned no session token", domain.ErrAuthExchange)
	}

	return &domain.SessionCredentials{
		SessionToken: sessionToken,
		SessionID:    login.Session.Id,
	}, nil
}

// ValidateSession validates a session token and returns the identity.
func (g *KratosGateway) ValidateSession(ctx context.Context, sessionToken string) (*domain.Identity, error) {
	if sessionToken == "" {
		return nil, domain.ErrSessionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	session, resp, err := g.client.FrontendAPI.ToSession(ctx).
		XSessionToken(sessionToken).
		Execute()
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized {
				return nil, domain.ErrAuthFailed
			}
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrSessionInactive
	}

	if session.Identity == nil {
		return nil, domain.ErrMissingIdentity
	}

	email := ""
	if traits, ok := session.Identity.Traits.(map[string]interface{}); ok {
		if emailVal, ok := traits["email"]; ok {
			if emailStr, ok := emailVal.(string); ok {
				email = emailStr
			}
		}
	}

	var createdAt time.Time
	if session.Identity.CreatedAt != nil {
		createdAt = *session.Identity.CreatedAt
	}

	return &domain.Identity{
		UserID:    session.Identity.Id,
		Email:     email,
		SessionID: session.Id,
		CreatedAt: createdAt,
	}, nil
}

// RevokeSession invalidates the session server-side. Revoking an already
// dead session is treated as success so sign-out stays idempotent.
func (g *KratosGateway) RevokeSession(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := g.client.FrontendAPI.PerformNativeLogout(ctx).
		PerformNativeLogoutBody(*kratos.NewPerformNativeLogoutBody(sessionToken)).
		Execute()
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
				return nil
			}
			return fmt.Errorf("%w: kratos returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
		}
		return fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	return nil
}
