package repository

import (
	"context"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
)

// OwnerRepository persists owner accounts
type OwnerRepository interface {
	// Create stores owner and assigns its ID
	Create(ctx context.Context, owner *domain.Owner) error

	// GetByID returns domain.ErrOwnerNotFound when missing
	GetByID(ctx context.Context, id string) (*domain.Owner, error)

	// GetByEmail returns the first owner with the exact email
	GetByEmail(ctx context.Context, email string) (*domain.Owner, error)

	// Update saves the whole owner document
	Update(ctx context.Context, owner *domain.Owner) error
}

// SnakeRepository persists snakes
type SnakeRepository interface {
	Create(ctx context.Context, snake *domain.Snake) error
	GetByID(ctx context.Context, id string) (*domain.Snake, error)

	// GetByIDs returns the snakes found, in the order of ids
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Snake, error)
}

// CageQuery narrows candidates server side. Matching is finished by domain.MatchAvailableCages.
type CageQuery struct {
	MinSquareMeters  float64
	CheckIn          time.Time
	CheckOut         time.Time
	RequireDangerous bool
}

// CageRepository persists cages with their embedded windows
type CageRepository interface {
	Create(ctx context.Context, cage *domain.Cage) error
	GetByID(ctx context.Context, id string) (*domain.Cage, error)

	// GetByIDs returns the cages found, in the order of ids
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Cage, error)

	// AppendWindow atomically appends window to the cage's bookings
	AppendWindow(ctx context.Context, cageID string, window domain.Booking) error

	// FindCandidates returns cages that may hold an open window for the query,
	// ordered by price ascending then square meters descending
	FindCandidates(ctx context.Context, q CageQuery) ([]*domain.Cage, error)

	// FindByGuestOwner returns cages holding at least one window booked by ownerID
	FindByGuestOwner(ctx context.Context, ownerID string) ([]*domain.Cage, error)

	// ReserveWindow replaces the window at index with reserved, provided the
	// stored window still equals expected and is open. Otherwise it returns
	// domain.ErrAvailabilityConflict.
	ReserveWindow(ctx context.Context, cageID string, index int, expected, reserved domain.Booking) error
}

// Store groups the repositories of one driver
type Store struct {
	Owners OwnerRepository
	Snakes SnakeRepository
	Cages  CageRepository

	// Ping checks the backing database
	Ping func(ctx context.Context) error
	// Close releases the backing connection
	Close func(ctx context.Context) error
}

func sameWindow(stored, expected domain.Booking) bool {
	return stored.IsOpen() &&
		stored.CheckIn.Equal(expected.CheckIn) &&
		stored.CheckOut.Equal(expected.CheckOut)
}

// orderByIDs returns items rearranged to follow ids, once each, skipping ids not found
func orderByIDs[T any](ids []string, items []T, idOf func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[idOf(it)] = it
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
			delete(byID, id)
		}
	}
	return out
}
