package service

import (
	"context"
	"errors"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/repository"
	"github.com/VB6Enjoyer/snakebnb/pkg/logger"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// BookingService covers the guest side: searching and booking cages
type BookingService interface {
	// FindAvailableCages returns cages fitting snake with an open window
	// covering the stay, cheapest first
	FindAvailableCages(ctx context.Context, checkIn, checkOut time.Time, snake *domain.Snake) ([]*domain.Cage, error)

	// BookCage reserves the first open window of cageID covering the stay
	BookCage(ctx context.Context, req BookCageRequest) (*domain.CageBooking, error)

	// GuestBookings returns every window booked by ownerID with its cage
	GuestBookings(ctx context.Context, ownerID string) ([]domain.CageBooking, error)
}

// BookCageRequest identifies who books which cage for when
type BookCageRequest struct {
	OwnerID  string
	SnakeID  string
	CageID   string
	CheckIn  time.Time
	CheckOut time.Time
}

type bookingService struct {
	owners    repository.OwnerRepository
	snakes    repository.SnakeRepository
	cages     repository.CageRepository
	publisher EventPublisher
	now       func() time.Time
}

// BookingServiceConfig holds optional collaborators of the booking service
type BookingServiceConfig struct {
	Publisher EventPublisher
	Clock     func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(
	owners repository.OwnerRepository,
	snakes repository.SnakeRepository,
	cages repository.CageRepository,
	cfg *BookingServiceConfig,
) BookingService {
	s := &bookingService{
		owners:    owners,
		snakes:    snakes,
		cages:     cages,
		publisher: NewNoOpEventPublisher(),
		now:       utcNow,
	}
	if cfg != nil {
		if cfg.Publisher != nil {
			s.publisher = cfg.Publisher
		}
		if cfg.Clock != nil {
			s.now = cfg.Clock
		}
	}
	return s
}

func (s *bookingService) FindAvailableCages(ctx context.Context, checkIn, checkOut time.Time, snake *domain.Snake) ([]*domain.Cage, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.find_available")
	defer span.End()

	if !checkIn.Before(checkOut) {
		return nil, domain.ErrInvalidDateRange
	}
	if snake == nil {
		return nil, domain.ErrSnakeNotFound
	}

	candidates, err := s.cages.FindCandidates(ctx, repository.CageQuery{
		MinSquareMeters:  snake.MinCageSize(),
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		RequireDangerous: snake.IsVenomous,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	cages := domain.MatchAvailableCages(candidates, snake, checkIn, checkOut)
	span.SetAttributes(attribute.Int("candidates", len(candidates)), attribute.Int("available", len(cages)))
	return cages, nil
}

func (s *bookingService) BookCage(ctx context.Context, req BookCageRequest) (*domain.CageBooking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.book_cage")
	defer span.End()
	span.SetAttributes(
		attribute.String("owner_id", req.OwnerID),
		attribute.String("snake_id", req.SnakeID),
		attribute.String("cage_id", req.CageID),
	)

	if !req.CheckIn.Before(req.CheckOut) {
		return nil, domain.ErrInvalidDateRange
	}

	owner, err := s.owners.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if !owner.HasSnake(req.SnakeID) {
		return nil, domain.ErrSnakeNotFound
	}
	snake, err := s.snakes.GetByID(ctx, req.SnakeID)
	if err != nil {
		return nil, err
	}

	cage, err := s.cages.GetByID(ctx, req.CageID)
	if err != nil {
		return nil, err
	}
	if !cage.FitsSnake(snake) {
		return nil, domain.ErrNoAvailability
	}

	idx, ok := cage.FindOpenWindow(req.CheckIn, req.CheckOut)
	if !ok {
		return nil, domain.ErrNoAvailability
	}
	expected := cage.Bookings[idx].Clone()

	idx, reserved, err := cage.Reserve(owner.ID, snake.ID, req.CheckIn, req.CheckOut, s.now())
	if err != nil {
		return nil, err
	}

	log := logger.Get().WithContext(ctx)
	if err := s.cages.ReserveWindow(ctx, cage.ID, idx, expected, reserved); err != nil {
		if errors.Is(err, domain.ErrAvailabilityConflict) {
			log.Warn("reservation lost a concurrent write",
				zap.String("cage_id", cage.ID),
				zap.Int("window_index", idx),
			)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	log.Info("cage booked",
		zap.String("cage_id", cage.ID),
		zap.String("owner_id", owner.ID),
		zap.String("snake_id", snake.ID),
		zap.Time("check_in", req.CheckIn),
		zap.Time("check_out", req.CheckOut),
	)

	if err := s.publisher.PublishCageBooked(ctx, cage, reserved); err != nil {
		log.Warn("failed to publish booking event", zap.String("cage_id", cage.ID), zap.Error(err))
	}

	return &domain.CageBooking{Cage: cage, Booking: reserved}, nil
}

func (s *bookingService) GuestBookings(ctx context.Context, ownerID string) ([]domain.CageBooking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.guest_bookings")
	defer span.End()

	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cages, err := s.cages.FindByGuestOwner(ctx, owner.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return domain.GuestBookings(cages, owner.ID), nil
}
