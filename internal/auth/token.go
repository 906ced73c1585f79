package auth

import (
	"strings"
	"time"
)

// Token is an access token with an optional expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the token is present and, if it has an expiry, not yet expired.
func (t *Token) Valid() bool {
	if t == nil || strings.TrimSpace(t.AccessToken) == "" {
		return false
	}

	return t.ExpiresAt.IsZero() || time.Now().Before(t.ExpiresAt)
}
