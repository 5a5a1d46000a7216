package session

import (
	"log/slog"
	"net/http"

	"auth-gate/internal/domain"
	"auth-gate/internal/infrastructure/cookie"
)

// Factory builds request-scoped session views over process-scoped
// collaborators. Handlers construct a fresh view per request instead of
// sharing a process-wide client.
type Factory struct {
	provider domain.ProviderGateway
	cache    domain.SessionCache
	cfg      Config
	logger   *slog.Logger
}

// NewFactory creates a session view factory.
func NewFactory(provider domain.ProviderGateway, cache domain.SessionCache, cfg Config, logger *slog.Logger) *Factory {
	return &Factory{
		provider: provider,
		cache:    cache,
		cfg:      cfg.WithDefaults(),
		logger:   logger,
	}
}

// ReadOnly returns a view for contexts that only render.
func (f *Factory) ReadOnly(req *http.Request) *ReadOnlyView {
	return NewReadOnlyView(cookie.NewReadOnlyView(req), f.provider, f.cache, f.cfg)
}

// Mutable returns a view for request handlers holding the response.
func (f *Factory) Mutable(req *http.Request, resp http.ResponseWriter) *MutableView {
	return NewMutableView(cookie.NewMutableView(req, resp), f.provider, f.cache, f.cfg, f.logger)
}
