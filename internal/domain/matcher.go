package domain

import (
	"sort"
	"time"
)

// MatchAvailableCages returns the cages that fit snake and hold an open window
// covering [checkIn, checkOut], cheapest first and larger first on equal price.
// Each cage appears once. Input order breaks remaining ties.
func MatchAvailableCages(cages []*Cage, snake *Snake, checkIn, checkOut time.Time) []*Cage {
	matched := make([]*Cage, 0, len(cages))
	for _, c := range cages {
		if !c.FitsSnake(snake) {
			continue
		}
		if _, ok := c.FindOpenWindow(checkIn, checkOut); ok {
			matched = append(matched, c)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Price != matched[j].Price {
			return matched[i].Price < matched[j].Price
		}
		return matched[i].SquareMeters > matched[j].SquareMeters
	})
	return matched
}

// GuestBookings pairs every window in cages booked by ownerID with its cage
func GuestBookings(cages []*Cage, ownerID string) []CageBooking {
	var out []CageBooking
	for _, c := range cages {
		for _, b := range c.Bookings {
			if b.GuestOwnerID == ownerID {
				out = append(out, CageBooking{Cage: c, Booking: b})
			}
		}
	}
	return out
}

// HostedBookings pairs every stamped reservation in cages with its cage
func HostedBookings(cages []*Cage) []CageBooking {
	var out []CageBooking
	for _, c := range cages {
		for _, b := range c.BookedWindows() {
			out = append(out, CageBooking{Cage: c, Booking: b})
		}
	}
	return out
}
