package domain

import (
	"strings"
	"time"
)

// Owner is an account. Email is the login key.
type Owner struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SnakeIDs     []string  `json:"snake_ids"`
	CageIDs      []string  `json:"cage_ids"`
	RegisteredAt time.Time `json:"registered_date"`
}

// NormalizeEmail trims and lower-cases an email for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewOwner builds an owner with a normalized email
func NewOwner(name, email string, now time.Time) (*Owner, error) {
	email = NormalizeEmail(email)
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if email == "" {
		return nil, ErrInvalidEmail
	}
	return &Owner{
		Name:         name,
		Email:        email,
		SnakeIDs:     []string{},
		CageIDs:      []string{},
		RegisteredAt: now,
	}, nil
}

// HasSnake reports whether snakeID is listed on the owner
func (o *Owner) HasSnake(snakeID string) bool {
	for _, id := range o.SnakeIDs {
		if id == snakeID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (o *Owner) Clone() *Owner {
	c := *o
	c.SnakeIDs = append([]string{}, o.SnakeIDs...)
	c.CageIDs = append([]string{}, o.CageIDs...)
	return &c
}
