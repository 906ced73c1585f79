package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// StaticProvider holds a token in memory.
type StaticProvider struct {
	mutex sync.RWMutex
	token Token
}

var _ bookhub.CredentialProvider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider for token. An empty token means "absent".
func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: Token{AccessToken: strings.TrimSpace(token)}}
}

// Token implements bookhub.CredentialProvider.
func (p *StaticProvider) Token(ctx context.Context) (string, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if !p.token.Valid() {
		return "", false
	}

	return p.token.AccessToken, true
}

// SetToken replaces the held token.
func (p *StaticProvider) SetToken(token string, expiresAt time.Time) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.token = Token{AccessToken: strings.TrimSpace(token), ExpiresAt: expiresAt}
}

// Clear forgets the held token.
func (p *StaticProvider) Clear() {
	p.SetToken("", time.Time{})
}
