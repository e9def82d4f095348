package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDate accepts yyyy-mm-dd or RFC 3339 and returns UTC
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t.UTC(), nil
}

// RegisterCageRequest represents request to register a cage
type RegisterCageRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Price                float64 `json:"price" binding:"gte=0"`
	SquareMeters         float64 `json:"square_meters" binding:"required,gt=0"`
	IsCarpeted           bool    `json:"is_carpeted"`
	HasToys              bool    `json:"has_toys"`
	AllowDangerousSnakes bool    `json:"allow_dangerous_snakes"`
}

// ToSpec converts the request to a domain cage spec
func (r *RegisterCageRequest) ToSpec() domain.CageSpec {
	return domain.CageSpec{
		Name:                 r.Name,
		Price:                r.Price,
		SquareMeters:         r.SquareMeters,
		IsCarpeted:           r.IsCarpeted,
		HasToys:              r.HasToys,
		AllowDangerousSnakes: r.AllowDangerousSnakes,
	}
}

// AddAvailabilityRequest represents request to open a window on a cage.
// Zero and negative day counts are accepted.
type AddAvailabilityRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	Days      *int   `json:"days" binding:"required"`
}

// AvailableCagesQuery represents the search query for open cages
type AvailableCagesQuery struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
	SnakeID  string `form:"snake_id" binding:"required"`
}

// BookingResponse represents a window of a cage
type BookingResponse struct {
	GuestOwnerID string     `json:"guest_owner_id,omitempty"`
	GuestSnakeID string     `json:"guest_snake_id,omitempty"`
	BookedAt     *time.Time `json:"booked_date,omitempty"`
	CheckIn      string     `json:"check_in_date"`
	CheckOut     string     `json:"check_out_date"`
	Days         int        `json:"days"`
	IsBooked     bool       `json:"is_booked"`
	Review       string     `json:"review,omitempty"`
	Rating       int        `json:"rating"`
}

// CageResponse represents a cage in API response
type CageResponse struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	Price                float64            `json:"price"`
	SquareMeters         float64            `json:"square_meters"`
	IsCarpeted           bool               `json:"is_carpeted"`
	HasToys              bool               `json:"has_toys"`
	AllowDangerousSnakes bool               `json:"allow_dangerous_snakes"`
	Bookings             []*BookingResponse `json:"bookings"`
	RegisteredAt         time.Time          `json:"registered_date"`
}

// CageBookingResponse pairs a window with its cage
type CageBookingResponse struct {
	CageID   string           `json:"cage_id"`
	CageName string           `json:"cage_name"`
	Price    float64          `json:"price"`
	Booking  *BookingResponse `json:"booking"`
}

// BookingFromDomain converts a domain window
func BookingFromDomain(b domain.Booking) *BookingResponse {
	return &BookingResponse{
		GuestOwnerID: b.GuestOwnerID,
		GuestSnakeID: b.GuestSnakeID,
		BookedAt:     b.BookedAt,
		CheckIn:      b.CheckIn.Format(dateLayout),
		CheckOut:     b.CheckOut.Format(dateLayout),
		Days:         b.DurationInDays(),
		IsBooked:     b.IsBooked(),
		Review:       b.Review,
		Rating:       b.Rating,
	}
}

// CageFromDomain converts domain Cage to CageResponse
func CageFromDomain(c *domain.Cage) *CageResponse {
	bookings := make([]*BookingResponse, len(c.Bookings))
	for i, b := range c.Bookings {
		bookings[i] = BookingFromDomain(b)
	}
	return &CageResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Price:                c.Price,
		SquareMeters:         c.SquareMeters,
		IsCarpeted:           c.IsCarpeted,
		HasToys:              c.HasToys,
		AllowDangerousSnakes: c.AllowDangerousSnakes,
		Bookings:             bookings,
		RegisteredAt:         c.RegisteredAt,
	}
}

// CagesFromDomain converts a slice of cages
func CagesFromDomain(cages []*domain.Cage) []*CageResponse {
	out := make([]*CageResponse, len(cages))
	for i, c := range cages {
		out[i] = CageFromDomain(c)
	}
	return out
}

// CageBookingFromDomain converts a cage/window pair
func CageBookingFromDomain(p domain.CageBooking) *CageBookingResponse {
	return &CageBookingResponse{
		CageID:   p.Cage.ID,
		CageName: p.Cage.Name,
		Price:    p.Cage.Price,
		Booking:  BookingFromDomain(p.Booking),
	}
}

// CageBookingsFromDomain converts cage/window pairs
func CageBookingsFromDomain(pairs []domain.CageBooking) []*CageBookingResponse {
	out := make([]*CageBookingResponse, len(pairs))
	for i, p := range pairs {
		out[i] = CageBookingFromDomain(p)
	}
	return out
}
