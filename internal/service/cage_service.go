package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/repository"
	"github.com/VB6Enjoyer/snakebnb/pkg/logger"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CageService covers the host side: cages and their availability
type CageService interface {
	// RegisterCage stores a cage and links it to the owner
	RegisterCage(ctx context.Context, ownerID string, spec domain.CageSpec) (*domain.Cage, error)

	// ListForOwner returns the cages the owner manages
	ListForOwner(ctx context.Context, ownerID string) ([]*domain.Cage, error)

	// AddAvailability appends an open window [start, start+days) and returns the refreshed cage
	AddAvailability(ctx context.Context, cageID string, start time.Time, days int) (*domain.Cage, error)

	// HostedBookings returns the stamped reservations across the owner's cages
	HostedBookings(ctx context.Context, ownerID string) ([]domain.CageBooking, error)
}

type cageService struct {
	owners    repository.OwnerRepository
	cages     repository.CageRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewCageService creates a new cage service
func NewCageService(owners repository.OwnerRepository, cages repository.CageRepository, publisher EventPublisher, clock func() time.Time) CageService {
	if publisher == nil {
		publisher = NewNoOpEventPublisher()
	}
	if clock == nil {
		clock = utcNow
	}
	return &cageService{owners: owners, cages: cages, publisher: publisher, now: clock}
}

func (s *cageService) RegisterCage(ctx context.Context, ownerID string, spec domain.CageSpec) (*domain.Cage, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.cage.register")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", ownerID))

	cage, err := domain.NewCage(spec, s.now())
	if err != nil {
		return nil, err
	}

	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.cages.Create(ctx, cage); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	owner.CageIDs = append(owner.CageIDs, cage.ID)
	if err := s.owners.Update(ctx, owner); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to link cage to owner: %w", err)
	}
	return cage, nil
}

func (s *cageService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Cage, error) {
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.cages.GetByIDs(ctx, owner.CageIDs)
}

func (s *cageService) AddAvailability(ctx context.Context, cageID string, start time.Time, days int) (*domain.Cage, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.cage.add_availability")
	defer span.End()
	span.SetAttributes(attribute.String("cage_id", cageID), attribute.Int("days", days))

	window := domain.NewAvailability(start, days)
	if err := s.cages.AppendWindow(ctx, cageID, window); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	cage, err := s.cages.GetByID(ctx, cageID)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishAvailabilityAdded(ctx, cage, window); err != nil {
		logger.Get().Warn("failed to publish availability event",
			zap.String("cage_id", cageID),
			zap.Error(err),
		)
	}
	return cage, nil
}

func (s *cageService) HostedBookings(ctx context.Context, ownerID string) ([]domain.CageBooking, error) {
	cages, err := s.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return domain.HostedBookings(cages), nil
}
