// Package session tracks the account an interactive user is logged in as.
package session

import (
	"context"
	"errors"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
)

// AccountFinder looks accounts up by email
type AccountFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.Owner, error)
}

// Session holds the active account of one CLI run. It is not safe for
// concurrent use.
type Session struct {
	accounts AccountFinder
	active   *domain.Owner
}

// New creates an unauthenticated session
func New(accounts AccountFinder) *Session {
	return &Session{accounts: accounts}
}

// SetActive replaces the active account. nil logs out.
func (s *Session) SetActive(owner *domain.Owner) {
	s.active = owner
}

// Active returns the active account or nil
func (s *Session) Active() *domain.Owner {
	return s.active
}

// IsAuthenticated reports whether an account is active
func (s *Session) IsAuthenticated() bool {
	return s.active != nil
}

// Require returns the active account or ErrNotAuthenticated
func (s *Session) Require() (*domain.Owner, error) {
	if s.active == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.active, nil
}

// Reload re-reads the active account by email. If the account no longer
// exists the session is cleared. Other lookup errors leave it untouched.
func (s *Session) Reload(ctx context.Context) error {
	if s.active == nil {
		return nil
	}

	owner, err := s.accounts.FindByEmail(ctx, s.active.Email)
	if err != nil {
		if errors.Is(err, domain.ErrOwnerNotFound) {
			s.active = nil
			return nil
		}
		return err
	}
	s.active = owner
	return nil
}
