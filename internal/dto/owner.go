package dto

import (
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
)

// CreateOwnerRequest represents request to create an account
type CreateOwnerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// OwnerResponse represents an owner in API response
type OwnerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SnakeIDs     []string  `json:"snake_ids"`
	CageIDs      []string  `json:"cage_ids"`
	RegisteredAt time.Time `json:"registered_date"`
}

// CreateSnakeRequest represents request to add a snake
type CreateSnakeRequest struct {
	Name       string  `json:"name" binding:"required"`
	Species    string  `json:"species"`
	Length     float64 `json:"length" binding:"required,gt=0"`
	IsVenomous bool    `json:"is_venomous"`
}

// SnakeResponse represents a snake in API response
type SnakeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Species      string    `json:"species"`
	Length       float64   `json:"length"`
	IsVenomous   bool      `json:"is_venomous"`
	RegisteredAt time.Time `json:"registered_date"`
}

// OwnerFromDomain converts domain Owner to OwnerResponse
func OwnerFromDomain(o *domain.Owner) *OwnerResponse {
	return &OwnerResponse{
		ID:           o.ID,
		Name:         o.Name,
		Email:        o.Email,
		SnakeIDs:     nonNil(o.SnakeIDs),
		CageIDs:      nonNil(o.CageIDs),
		RegisteredAt: o.RegisteredAt,
	}
}

// SnakeFromDomain converts domain Snake to SnakeResponse
func SnakeFromDomain(s *domain.Snake) *SnakeResponse {
	return &SnakeResponse{
		ID:           s.ID,
		Name:         s.Name,
		Species:      s.Species,
		Length:       s.Length,
		IsVenomous:   s.IsVenomous,
		RegisteredAt: s.RegisteredAt,
	}
}

// SnakesFromDomain converts a slice of snakes
func SnakesFromDomain(snakes []*domain.Snake) []*SnakeResponse {
	out := make([]*SnakeResponse, len(snakes))
	for i, s := range snakes {
		out[i] = SnakeFromDomain(s)
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
