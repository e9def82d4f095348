package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock() time.Time {
	return day("2023-12-01")
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCageBooked(ctx context.Context, cage *domain.Cage, window domain.Booking) error {
	args := m.Called(ctx, cage, window)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishAvailabilityAdded(ctx context.Context, cage *domain.Cage, window domain.Booking) error {
	args := m.Called(ctx, cage, window)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// MockCageRepository delegates to a real repository unless a Func is set
type MockCageRepository struct {
	repository.CageRepository
	ReserveWindowFunc  func(ctx context.Context, cageID string, index int, expected, reserved domain.Booking) error
	FindCandidatesFunc func(ctx context.Context, q repository.CageQuery) ([]*domain.Cage, error)

	mu      sync.Mutex
	queries []repository.CageQuery
}

func (m *MockCageRepository) ReserveWindow(ctx context.Context, cageID string, index int, expected, reserved domain.Booking) error {
	if m.ReserveWindowFunc != nil {
		return m.ReserveWindowFunc(ctx, cageID, index, expected, reserved)
	}
	return m.CageRepository.ReserveWindow(ctx, cageID, index, expected, reserved)
}

func (m *MockCageRepository) FindCandidates(ctx context.Context, q repository.CageQuery) ([]*domain.Cage, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
	if m.FindCandidatesFunc != nil {
		return m.FindCandidatesFunc(ctx, q)
	}
	return m.CageRepository.FindCandidates(ctx, q)
}

type fixture struct {
	store     *repository.Store
	cageRepo  *MockCageRepository
	publisher *MockEventPublisher
	accounts  AccountService
	snakes    SnakeService
	cages     CageService
	bookings  BookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore().Store()
	cageRepo := &MockCageRepository{CageRepository: store.Cages}
	publisher := &MockEventPublisher{}
	publisher.On("PublishCageBooked", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	publisher.On("PublishAvailabilityAdded", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return &fixture{
		store:     store,
		cageRepo:  cageRepo,
		publisher: publisher,
		accounts:  NewAccountService(store.Owners, fixedClock),
		snakes:    NewSnakeService(store.Owners, store.Snakes, fixedClock),
		cages:     NewCageService(store.Owners, cageRepo, publisher, fixedClock),
		bookings: NewBookingService(store.Owners, store.Snakes, cageRepo, &BookingServiceConfig{
			Publisher: publisher,
			Clock:     fixedClock,
		}),
	}
}

func (f *fixture) owner(t *testing.T, name, email string) *domain.Owner {
	t.Helper()
	o, err := f.accounts.CreateAccount(context.Background(), name, email)
	require.NoError(t, err)
	return o
}

func (f *fixture) snake(t *testing.T, ownerID string, length float64, venomous bool) *domain.Snake {
	t.Helper()
	s, err := f.snakes.AddSnake(context.Background(), ownerID, SnakeInput{Name: "Kaa", Species: "python", Length: length, IsVenomous: venomous})
	require.NoError(t, err)
	return s
}

func (f *fixture) cage(t *testing.T, ownerID string, spec domain.CageSpec, start string, days int) *domain.Cage {
	t.Helper()
	c, err := f.cages.RegisterCage(context.Background(), ownerID, spec)
	require.NoError(t, err)
	if start != "" {
		c, err = f.cages.AddAvailability(context.Background(), c.ID, day(start), days)
		require.NoError(t, err)
	}
	return c
}
