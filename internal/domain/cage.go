package domain

import (
	"strings"
	"time"
)

// Cage is offered by a host. Bookings holds its windows in insertion order.
type Cage struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Price                float64   `json:"price"`
	SquareMeters         float64   `json:"square_meters"`
	IsCarpeted           bool      `json:"is_carpeted"`
	HasToys              bool      `json:"has_toys"`
	AllowDangerousSnakes bool      `json:"allow_dangerous_snakes"`
	Bookings             []Booking `json:"bookings"`
	RegisteredAt         time.Time `json:"registered_date"`
}

// CageSpec holds the fields a host enters when registering a cage
type CageSpec struct {
	Name                 string
	Price                float64
	SquareMeters         float64
	IsCarpeted           bool
	HasToys              bool
	AllowDangerousSnakes bool
}

// NewCage validates spec and builds a cage with no windows
func NewCage(spec CageSpec, now time.Time) (*Cage, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, ErrInvalidName
	}
	if spec.SquareMeters <= 0 {
		return nil, ErrInvalidSquareMeters
	}
	if spec.Price < 0 {
		return nil, ErrInvalidPrice
	}
	return &Cage{
		Name:                 spec.Name,
		Price:                spec.Price,
		SquareMeters:         spec.SquareMeters,
		IsCarpeted:           spec.IsCarpeted,
		HasToys:              spec.HasToys,
		AllowDangerousSnakes: spec.AllowDangerousSnakes,
		Bookings:             []Booking{},
		RegisteredAt:         now,
	}, nil
}

// FitsSnake checks size and venom policy, ignoring dates
func (c *Cage) FitsSnake(s *Snake) bool {
	if c.SquareMeters < s.MinCageSize() {
		return false
	}
	return !s.IsVenomous || c.AllowDangerousSnakes
}

// FindOpenWindow returns the index of the first window accepting the range
func (c *Cage) FindOpenWindow(checkIn, checkOut time.Time) (int, bool) {
	for i, b := range c.Bookings {
		if b.Accepts(checkIn, checkOut) {
			return i, true
		}
	}
	return -1, false
}

// AddAvailability appends an open window of days starting at start.
// Overlaps and zero or negative lengths are accepted.
func (c *Cage) AddAvailability(start time.Time, days int) Booking {
	w := NewAvailability(start, days)
	c.Bookings = append(c.Bookings, w)
	return w
}

// Reserve books the first accepting window in place, narrowing it to the
// requested range. The residual days of the window are not split out.
// On ErrNoAvailability the cage is left unchanged.
func (c *Cage) Reserve(ownerID, snakeID string, checkIn, checkOut, now time.Time) (int, Booking, error) {
	i, ok := c.FindOpenWindow(checkIn, checkOut)
	if !ok {
		return -1, Booking{}, ErrNoAvailability
	}

	booked := now
	b := c.Bookings[i]
	b.GuestOwnerID = ownerID
	b.GuestSnakeID = snakeID
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.BookedAt = &booked
	c.Bookings[i] = b

	return i, b, nil
}

// BookedWindows returns the stamped reservations of the cage
func (c *Cage) BookedWindows() []Booking {
	var out []Booking
	for _, b := range c.Bookings {
		if b.IsBooked() {
			out = append(out, b)
		}
	}
	return out
}

// Clone returns a deep copy
func (c *Cage) Clone() *Cage {
	cp := *c
	cp.Bookings = make([]Booking, len(c.Bookings))
	for i, b := range c.Bookings {
		cp.Bookings[i] = b.Clone()
	}
	return &cp
}
