package kernel

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"washday/internal/pkg/errs"
	"washday/internal/pkg/guard"
)

// AccessTokenTTL bounds how long a guest magic link stays usable.
const AccessTokenTTL = 7 * 24 * time.Hour

// accessTokenBytes is the entropy of a generated token (32 hex characters).
const accessTokenBytes = 16

// ErrAccessTokenIsNotConstructed is returned when validating a zero-value
// AccessToken. AccessToken must be created via NewAccessToken or
// RestoreAccessToken.
var ErrAccessTokenIsNotConstructed = errs.NewValueIsRequiredError(
	"access token must be created via NewAccessToken or RestoreAccessToken constructors")

// AccessToken is an immutable value object granting guest access to a single
// order without full authentication. Tokens carry a bounded expiry so that a
// leaked magic link eventually goes stale.
//
// Example:
//
//	token, err := kernel.NewAccessToken(time.Now())
//	if err != nil {
//	    // handle generation error
//	}
//	link := "https://washday.example/orders/track/" + token.Value()
type AccessToken struct { //nolint:recvcheck //using for validation
	value     string
	expiresAt time.Time
	guard     guard.ConstructorGuard
}

// NewAccessToken generates a random token expiring AccessTokenTTL after now.
func NewAccessToken(now time.Time) (AccessToken, error) {
	buf := make([]byte, accessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return AccessToken{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return AccessToken{
		value:     hex.EncodeToString(buf),
		expiresAt: now.Add(AccessTokenTTL),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreAccessToken reconstructs a token from persistence.
// The value must be non-empty and the expiry must be set.
func RestoreAccessToken(value string, expiresAt time.Time) (AccessToken, error) {
	if value == "" {
		return AccessToken{}, errs.NewValueIsRequiredError("access token value")
	}
	if expiresAt.IsZero() {
		return AccessToken{}, errs.NewValueIsRequiredError("access token expiry")
	}

	return AccessToken{
		value:     value,
		expiresAt: expiresAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the AccessToken was created through a constructor.
func (t AccessToken) Validate() error {
	return t.guard.Validate(ErrAccessTokenIsNotConstructed)
}

// Value returns the opaque token string embedded in magic links.
func (t AccessToken) Value() string {
	return t.value
}

// ExpiresAt returns the instant after which the token is no longer honored.
func (t AccessToken) ExpiresAt() time.Time {
	return t.expiresAt
}

// IsExpired reports whether the token has expired as of now.
func (t AccessToken) IsExpired(now time.Time) bool {
	return now.After(t.expiresAt)
}
