package repository

import (
	"testing"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBookingDocument_OpenWindowHasNullGuests(t *testing.T) {
	doc, err := newBookingDocument(domain.NewAvailability(day("2024-01-01"), 3))
	require.NoError(t, err)
	assert.Nil(t, doc.GuestOwnerID)
	assert.Nil(t, doc.GuestSnakeID)
	assert.Nil(t, doc.BookedDate)
	assert.True(t, doc.toDomain().IsOpen())
}

func TestBookingDocument_ReservedWindow(t *testing.T) {
	owner := primitive.NewObjectID()
	snake := primitive.NewObjectID()
	now := time.Now().UTC()

	doc, err := newBookingDocument(domain.Booking{
		GuestOwnerID: owner.Hex(),
		GuestSnakeID: snake.Hex(),
		BookedAt:     &now,
		CheckIn:      day("2024-01-02"),
		CheckOut:     day("2024-01-05"),
	})
	require.NoError(t, err)
	require.NotNil(t, doc.GuestSnakeID)
	assert.Equal(t, snake, *doc.GuestSnakeID)

	b := doc.toDomain()
	assert.Equal(t, owner.Hex(), b.GuestOwnerID)
	assert.Equal(t, 3, b.DurationInDays())
}

func TestMongoDocuments_InvalidIDs(t *testing.T) {
	_, err := newBookingDocument(domain.Booking{GuestSnakeID: "not-hex"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = newOwnerDocument(&domain.Owner{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = newOwnerDocument(&domain.Owner{SnakeIDs: []string{"zz"}})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestCageDocument_EmptyBookings(t *testing.T) {
	c := (&cageDocument{ID: primitive.NewObjectID(), Name: "x"}).toDomain()
	assert.NotNil(t, c.Bookings)
	assert.Empty(t, c.Bookings)
}

func TestOrderByIDs(t *testing.T) {
	items := []string{"b", "a", "c"}
	got := orderByIDs([]string{"c", "a", "missing", "a"}, items, func(s string) string { return s })
	assert.Equal(t, []string{"c", "a"}, got)
}
