package domain

import (
	"strings"
	"time"
)

// Snake is immutable once created. Its owner is whoever lists its id.
type Snake struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Species      string    `json:"species"`
	Length       float64   `json:"length"`
	IsVenomous   bool      `json:"is_venomous"`
	RegisteredAt time.Time `json:"registered_date"`
}

// NewSnake validates and builds a snake
func NewSnake(name, species string, length float64, venomous bool, now time.Time) (*Snake, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	return &Snake{
		Name:         name,
		Species:      species,
		Length:       length,
		IsVenomous:   venomous,
		RegisteredAt: now,
	}, nil
}

// MinCageSize is the smallest cage, in square meters, the snake fits in
func (s *Snake) MinCageSize() float64 {
	return s.Length / 4
}
