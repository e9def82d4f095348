package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewAvailability(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		checkOut string
		duration int
	}{
		{"nine days", 9, "2024-01-10", 9},
		{"zero days", 0, "2024-01-01", 0},
		{"negative days", -2, "2023-12-30", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewAvailability(day("2024-01-01"), tt.days)
			assert.True(t, w.IsOpen())
			assert.False(t, w.IsBooked())
			assert.Equal(t, day(tt.checkOut), w.CheckOut)
			assert.Equal(t, tt.duration, w.DurationInDays())
		})
	}
}

func TestBooking_DurationTruncates(t *testing.T) {
	b := Booking{CheckIn: day("2024-01-01"), CheckOut: day("2024-01-03").Add(23 * time.Hour)}
	assert.Equal(t, 2, b.DurationInDays())
}

func TestCage_Reserve_NarrowsWindow(t *testing.T) {
	c := &Cage{Name: "Palace", SquareMeters: 2}
	c.AddAvailability(day("2024-01-01"), 9)
	now := day("2023-12-01")

	idx, b, err := c.Reserve("owner-1", "snake-1", day("2024-01-02"), day("2024-01-05"), now)
	require.NoError(t, err)

	assert.Equal(t, 0, idx)
	assert.Equal(t, day("2024-01-02"), b.CheckIn)
	assert.Equal(t, day("2024-01-05"), b.CheckOut)
	assert.Equal(t, "owner-1", b.GuestOwnerID)
	assert.Equal(t, "snake-1", b.GuestSnakeID)
	require.NotNil(t, b.BookedAt)
	assert.Equal(t, now, *b.BookedAt)
	assert.Equal(t, b, c.Bookings[0])
	assert.Len(t, c.Bookings, 1, "window must not be split")

	_, ok := c.FindOpenWindow(day("2024-01-06"), day("2024-01-08"))
	assert.False(t, ok, "residual days are consumed")
}

func TestCage_Reserve_SecondCallFails(t *testing.T) {
	c := &Cage{SquareMeters: 2}
	c.AddAvailability(day("2024-01-01"), 9)

	_, _, err := c.Reserve("o1", "s1", day("2024-01-02"), day("2024-01-05"), time.Now())
	require.NoError(t, err)

	before := c.Clone()
	_, _, err = c.Reserve("o2", "s2", day("2024-01-02"), day("2024-01-05"), time.Now())
	assert.True(t, errors.Is(err, ErrNoAvailability))
	assert.Equal(t, before.Bookings, c.Bookings)
}

func TestCage_Reserve_NoWindowLeavesCageUntouched(t *testing.T) {
	c := &Cage{SquareMeters: 2}
	c.AddAvailability(day("2024-02-01"), 3)
	before := c.Clone()

	idx, b, err := c.Reserve("o1", "s1", day("2024-01-02"), day("2024-01-05"), time.Now())
	assert.ErrorIs(t, err, ErrNoAvailability)
	assert.Equal(t, -1, idx)
	assert.Equal(t, Booking{}, b)
	assert.Equal(t, before.Bookings, c.Bookings)
}

func TestCage_Reserve_FirstMatchingWindowWins(t *testing.T) {
	c := &Cage{SquareMeters: 2}
	c.AddAvailability(day("2024-03-01"), 2)
	c.AddAvailability(day("2024-01-01"), 30)
	c.AddAvailability(day("2024-01-01"), 10)

	idx, _, err := c.Reserve("o1", "s1", day("2024-01-02"), day("2024-01-05"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.True(t, c.Bookings[2].IsOpen())
}

func TestCage_ZeroLengthWindowNeverMatches(t *testing.T) {
	c := &Cage{SquareMeters: 2}
	c.AddAvailability(day("2024-01-01"), 0)
	require.Len(t, c.Bookings, 1)

	_, ok := c.FindOpenWindow(day("2024-01-01"), day("2024-01-02"))
	assert.False(t, ok)
}

func TestCage_FitsSnake(t *testing.T) {
	tests := []struct {
		name  string
		cage  Cage
		snake Snake
		want  bool
	}{
		{"exact min size", Cage{SquareMeters: 1}, Snake{Length: 4}, true},
		{"too small", Cage{SquareMeters: 0.99}, Snake{Length: 4}, false},
		{"venomous refused", Cage{SquareMeters: 10}, Snake{Length: 1, IsVenomous: true}, false},
		{"venomous allowed", Cage{SquareMeters: 10, AllowDangerousSnakes: true}, Snake{Length: 1, IsVenomous: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cage.FitsSnake(&tt.snake))
		})
	}
}

func TestCage_Clone(t *testing.T) {
	c := &Cage{}
	c.AddAvailability(day("2024-01-01"), 5)
	_, _, err := c.Reserve("o", "s", day("2024-01-01"), day("2024-01-02"), day("2023-01-01"))
	require.NoError(t, err)

	cp := c.Clone()
	*cp.Bookings[0].BookedAt = day("2000-01-01")
	cp.Bookings[0].GuestOwnerID = "other"

	assert.Equal(t, day("2023-01-01"), *c.Bookings[0].BookedAt)
	assert.Equal(t, "o", c.Bookings[0].GuestOwnerID)
}

func TestNewCage_Validation(t *testing.T) {
	_, err := NewCage(CageSpec{Name: "", SquareMeters: 1}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = NewCage(CageSpec{Name: "x", SquareMeters: 0}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidSquareMeters)
	_, err = NewCage(CageSpec{Name: "x", SquareMeters: 1, Price: -1}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPrice)

	c, err := NewCage(CageSpec{Name: "x", SquareMeters: 1, Price: 0}, time.Now())
	require.NoError(t, err)
	assert.False(t, c.AllowDangerousSnakes)
	assert.Empty(t, c.Bookings)
}
