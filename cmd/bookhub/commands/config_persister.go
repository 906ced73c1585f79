package commands

import (
	"fmt"
	"sync"
	"time"

	"github.com/bookhub/admin-client/internal/auth"
	"github.com/bookhub/admin-client/internal/constants"
)

// ConfigPersister implements the auth.ConfigPersister interface.
type ConfigPersister struct {
	mutex sync.Mutex
}

var _ auth.ConfigPersister = (*ConfigPersister)(nil)

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateToken stores token and its expiry for apiEndpoint.
func (p *ConfigPersister) UpdateToken(apiEndpoint, token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	if config.API == "" {
		return constants.ErrNoAPIConfigured
	}

	if config.API != apiEndpoint {
		return fmt.Errorf("%w: %s is not %s", constants.ErrAPIMismatch, apiEndpoint, config.API)
	}

	config.Token = token
	config.TokenExpiresAt = nil

	if !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	return saveConfigStruct(config)
}

// ClearToken removes the stored token for apiEndpoint.
func (p *ConfigPersister) ClearToken(apiEndpoint string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	if config.API != apiEndpoint {
		return nil
	}

	config.Token = ""
	config.TokenExpiresAt = nil

	return saveConfigStruct(config)
}
