// Package session contains the Session entity used to authenticate staff and
// registered customers. A session maps an opaque bearer token to an actor and
// their role; guest customers never get a session and track orders through
// the per-order access token instead.
package session

import (
	"fmt"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
)

// TTL is how long a session stays valid after it is issued.
const TTL = 30 * 24 * time.Hour

// ErrSessionIsNotConstructed is returned when a Session was created with a
// default constructor instead of NewSession or RestoreSession.
var ErrSessionIsNotConstructed = fmt.Errorf("session is not constructed")

// Session is an authenticated actor bound to a bearer token.
type Session struct {
	token     string
	actorID   kernel.UUID
	role      kernel.Role
	expiresAt time.Time

	isConstructed bool
}

// NewSession issues a session for an actor. The token comes from the access
// token generator in kernel so session and tracking tokens share one format.
func NewSession(token string, actorID kernel.UUID, role kernel.Role, now time.Time) (*Session, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}
	if err := actorID.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		token:         token,
		actorID:       actorID,
		role:          role,
		expiresAt:     now.Add(TTL),
		isConstructed: true,
	}, nil
}

// RestoreSession rebuilds a session from storage.
func RestoreSession(token string, actorID kernel.UUID, role kernel.Role, expiresAt time.Time) (*Session, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}
	if err := actorID.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		token:         token,
		actorID:       actorID,
		role:          role,
		expiresAt:     expiresAt,
		isConstructed: true,
	}, nil
}

func (s *Session) Validate() error {
	if !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) Token() string        { return s.token }
func (s *Session) ActorID() kernel.UUID { return s.actorID }
func (s *Session) Role() kernel.Role    { return s.role }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// IsExpired reports whether the session is past its lifetime at now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.expiresAt)
}
