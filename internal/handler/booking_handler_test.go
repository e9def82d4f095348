package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockBookingService is a mock implementation of BookingService for testing
type MockBookingService struct {
	FindAvailableCagesFunc func(ctx context.Context, checkIn, checkOut time.Time, snake *domain.Snake) ([]*domain.Cage, error)
	BookCageFunc           func(ctx context.Context, req service.BookCageRequest) (*domain.CageBooking, error)
	GuestBookingsFunc      func(ctx context.Context, ownerID string) ([]domain.CageBooking, error)
}

func (m *MockBookingService) FindAvailableCages(ctx context.Context, checkIn, checkOut time.Time, snake *domain.Snake) ([]*domain.Cage, error) {
	if m.FindAvailableCagesFunc != nil {
		return m.FindAvailableCagesFunc(ctx, checkIn, checkOut, snake)
	}
	return nil, nil
}

func (m *MockBookingService) BookCage(ctx context.Context, req service.BookCageRequest) (*domain.CageBooking, error) {
	if m.BookCageFunc != nil {
		return m.BookCageFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockBookingService) GuestBookings(ctx context.Context, ownerID string) ([]domain.CageBooking, error) {
	if m.GuestBookingsFunc != nil {
		return m.GuestBookingsFunc(ctx, ownerID)
	}
	return nil, nil
}

func TestBookingHandler_Book(t *testing.T) {
	valid := map[string]any{"owner_id": "o1", "snake_id": "s1", "check_in": "2024-01-02", "check_out": "2024-01-05"}

	tests := []struct {
		name     string
		body     map[string]any
		err      error
		wantCode int
		wantErr  string
	}{
		{"lost race", valid, domain.ErrAvailabilityConflict, http.StatusConflict, "AVAILABILITY_CONFLICT"},
		{"no window", valid, domain.ErrNoAvailability, http.StatusConflict, "NO_AVAILABILITY"},
		{"foreign snake", valid, domain.ErrSnakeNotFound, http.StatusNotFound, "SNAKE_NOT_FOUND"},
		{"inverted range", valid, domain.ErrInvalidDateRange, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"store down", valid, errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"missing snake", map[string]any{"owner_id": "o1", "check_in": "2024-01-02", "check_out": "2024-01-05"}, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad check out", map[string]any{"owner_id": "o1", "snake_id": "s1", "check_in": "2024-01-02", "check_out": "later"}, nil, http.StatusBadRequest, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.BookCageRequest
			mock := &MockBookingService{
				BookCageFunc: func(ctx context.Context, req service.BookCageRequest) (*domain.CageBooking, error) {
					got = req
					return nil, tt.err
				},
			}
			api := newTestAPI(t, mock, nil)

			code, env := api.do(t, http.MethodPost, "/api/v1/cages/c1/bookings", tt.body)
			assert.Equal(t, tt.wantCode, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)

			if tt.err != nil {
				assert.Equal(t, "c1", got.CageID)
				assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), got.CheckOut)
			}
		})
	}
}

func TestBookingHandler_Available(t *testing.T) {
	mock := &MockBookingService{
		FindAvailableCagesFunc: func(ctx context.Context, checkIn, checkOut time.Time, snake *domain.Snake) ([]*domain.Cage, error) {
			return nil, domain.ErrInvalidDateRange
		},
	}
	api := newTestAPI(t, mock, nil)

	code, env := api.do(t, http.MethodGet, "/api/v1/cages/available?check_in=2024-01-02", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)

	code, env = api.do(t, http.MethodGet, "/api/v1/cages/available?check_in=2024-01-02&check_out=2024-01-05&snake_id=missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "SNAKE_NOT_FOUND", env.Error.Code)
}
