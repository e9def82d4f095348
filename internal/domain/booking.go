package domain

import "time"

// Booking is a window embedded in a Cage. With no guest it is an open
// availability window; once booked the guest fields and BookedAt are set.
type Booking struct {
	GuestOwnerID string     `json:"guest_owner_id,omitempty"`
	GuestSnakeID string     `json:"guest_snake_id,omitempty"`
	BookedAt     *time.Time `json:"booked_date,omitempty"`
	CheckIn      time.Time  `json:"check_in_date"`
	CheckOut     time.Time  `json:"check_out_date"`
	Review       string     `json:"review,omitempty"`
	Rating       int        `json:"rating"`
}

// NewAvailability returns an open window [start, start+days)
func NewAvailability(start time.Time, days int) Booking {
	return Booking{
		CheckIn:  start,
		CheckOut: start.AddDate(0, 0, days),
	}
}

// IsOpen reports whether no snake is booked into the window
func (b Booking) IsOpen() bool {
	return b.GuestSnakeID == ""
}

// IsBooked reports whether the reservation was stamped
func (b Booking) IsBooked() bool {
	return b.BookedAt != nil
}

// Covers reports whether the window contains [checkIn, checkOut]
func (b Booking) Covers(checkIn, checkOut time.Time) bool {
	return !b.CheckIn.After(checkIn) && !b.CheckOut.Before(checkOut)
}

// Accepts is the matching predicate: open and covering the range
func (b Booking) Accepts(checkIn, checkOut time.Time) bool {
	return b.IsOpen() && b.Covers(checkIn, checkOut)
}

// DurationInDays truncates to whole days; inverted windows are negative
func (b Booking) DurationInDays() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Clone copies the booking without sharing BookedAt
func (b Booking) Clone() Booking {
	if b.BookedAt != nil {
		t := *b.BookedAt
		b.BookedAt = &t
	}
	return b
}

// CageBooking pairs a booking with the cage that holds it
type CageBooking struct {
	Cage    *Cage   `json:"cage"`
	Booking Booking `json:"booking"`
}
