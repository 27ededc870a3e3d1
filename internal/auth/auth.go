// Package auth provides the pluggable access gate used by the admin
// endpoints. Production uses the JWT authenticator; tests use Static.
package auth

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned for any missing, malformed, expired or
// otherwise invalid credential.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is the authenticated caller.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Authenticator validates a bearer credential and resolves the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

// Static is a fixed-outcome authenticator for tests and disabled-auth setups.
// A nil Identity denies every request.
type Static struct {
	Identity *Identity
}

func (s Static) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if s.Identity == nil {
		return nil, ErrUnauthorized
	}
	id := *s.Identity
	return &id, nil
}
