package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// ConfigPersister defines the interface for persisting config changes.
type ConfigPersister interface {
	UpdateToken(apiEndpoint, token string, expiresAt time.Time) error
	ClearToken(apiEndpoint string) error
}

// ConfigProvider serves a token loaded from the CLI config and writes
// changes back through a ConfigPersister.
type ConfigProvider struct {
	memory          StaticProvider
	configPersister ConfigPersister
	apiEndpoint     string
	mutex           sync.Mutex
}

var _ bookhub.CredentialProvider = (*ConfigProvider)(nil)

// NewConfigProvider creates a config-persisting provider seeded with the stored token.
func NewConfigProvider(configPersister ConfigPersister, apiEndpoint, initialToken string, initialExpiry time.Time) *ConfigProvider {
	provider := &ConfigProvider{
		configPersister: configPersister,
		apiEndpoint:     apiEndpoint,
	}
	provider.memory.SetToken(initialToken, initialExpiry)

	return provider
}

// Token implements bookhub.CredentialProvider.
func (p *ConfigProvider) Token(ctx context.Context) (string, bool) {
	return p.memory.Token(ctx)
}

// SetToken stores token in memory and persists it.
func (p *ConfigProvider) SetToken(token string, expiresAt time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return constants.ErrEmptyToken
	}

	if p.configPersister == nil {
		return constants.ErrNoConfigPersister
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	err := p.configPersister.UpdateToken(p.apiEndpoint, token, expiresAt)
	if err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}

	p.memory.SetToken(token, expiresAt)

	return nil
}

// Clear forgets the token in memory and in the config.
func (p *ConfigProvider) Clear() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.memory.Clear()

	if p.configPersister == nil {
		return constants.ErrNoConfigPersister
	}

	err := p.configPersister.ClearToken(p.apiEndpoint)
	if err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}

	return nil
}
