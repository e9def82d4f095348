package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/repository"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// SnakeInput carries the fields of a new snake
type SnakeInput struct {
	Name       string
	Species    string
	Length     float64
	IsVenomous bool
}

// SnakeService manages the snakes of an owner
type SnakeService interface {
	// AddSnake stores a snake and links it to the owner
	AddSnake(ctx context.Context, ownerID string, in SnakeInput) (*domain.Snake, error)

	// ListForOwner returns the owner's snakes in the order they were added
	ListForOwner(ctx context.Context, ownerID string) ([]*domain.Snake, error)

	// Get looks a snake up by id
	Get(ctx context.Context, id string) (*domain.Snake, error)
}

type snakeService struct {
	owners repository.OwnerRepository
	snakes repository.SnakeRepository
	now    func() time.Time
}

// NewSnakeService creates a new snake service
func NewSnakeService(owners repository.OwnerRepository, snakes repository.SnakeRepository, clock func() time.Time) SnakeService {
	if clock == nil {
		clock = utcNow
	}
	return &snakeService{owners: owners, snakes: snakes, now: clock}
}

func (s *snakeService) AddSnake(ctx context.Context, ownerID string, in SnakeInput) (*domain.Snake, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.snake.add")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", ownerID))

	snake, err := domain.NewSnake(in.Name, in.Species, in.Length, in.IsVenomous, s.now())
	if err != nil {
		return nil, err
	}

	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.snakes.Create(ctx, snake); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	owner.SnakeIDs = append(owner.SnakeIDs, snake.ID)
	if err := s.owners.Update(ctx, owner); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to link snake to owner: %w", err)
	}
	return snake, nil
}

func (s *snakeService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Snake, error) {
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.snakes.GetByIDs(ctx, owner.SnakeIDs)
}

func (s *snakeService) Get(ctx context.Context, id string) (*domain.Snake, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.snakes.GetByID(ctx, id)
}
