package services

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// CSRFStore holds short-lived CSRF tokens issued to authenticated
// sessions.
type CSRFStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
}

// AuthService issues session tokens and the CSRF tokens required by
// mutating RPC methods.
type AuthService interface {
	// Login verifies the credentials and returns a signed JWT.
	Login(ctx context.Context, username, password string) (string, error)

	// IssueCSRFToken mints a token valid for the configured TTL. Only
	// authenticated callers reach this.
	IssueCSRFToken(ctx context.Context) (string, error)

	// ValidateCSRFToken reports whether the token was issued and has
	// not expired.
	ValidateCSRFToken(ctx context.Context, token string) (bool, error)
}
