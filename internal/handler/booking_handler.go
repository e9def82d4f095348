package handler

import (
	"github.com/VB6Enjoyer/snakebnb/internal/dto"
	"github.com/VB6Enjoyer/snakebnb/internal/service"
	"github.com/VB6Enjoyer/snakebnb/pkg/response"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// BookingHandler handles guest side search and booking requests
type BookingHandler struct {
	bookings service.BookingService
	snakes   service.SnakeService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings service.BookingService, snakes service.SnakeService) *BookingHandler {
	return &BookingHandler{bookings: bookings, snakes: snakes}
}

// Available handles GET /cages/available?check_in=&check_out=&snake_id=
func (h *BookingHandler) Available(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.available")
	defer span.End()

	var q dto.AvailableCagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	checkIn, err := dto.ParseDate(q.CheckIn)
	if err != nil {
		badRequest(c, err)
		return
	}
	checkOut, err := dto.ParseDate(q.CheckOut)
	if err != nil {
		badRequest(c, err)
		return
	}

	snake, err := h.snakes.Get(ctx, q.SnakeID)
	if err != nil {
		handleError(c, err)
		return
	}

	cages, err := h.bookings.FindAvailableCages(ctx, checkIn, checkOut, snake)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}
	span.SetAttributes(attribute.Int("available", len(cages)))
	response.Success(c, dto.CagesFromDomain(cages))
}

// Book handles POST /cages/:id/bookings
func (h *BookingHandler) Book(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.book")
	defer span.End()

	cageID := c.Param("id")
	span.SetAttributes(attribute.String("cage_id", cageID))

	var req dto.BookCageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	checkIn, err := dto.ParseDate(req.CheckIn)
	if err != nil {
		badRequest(c, err)
		return
	}
	checkOut, err := dto.ParseDate(req.CheckOut)
	if err != nil {
		badRequest(c, err)
		return
	}

	booked, err := h.bookings.BookCage(ctx, service.BookCageRequest{
		OwnerID:  req.OwnerID,
		SnakeID:  req.SnakeID,
		CageID:   cageID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}
	response.Created(c, dto.CageBookingFromDomain(*booked))
}

// GuestBookings handles GET /owners/:id/bookings
func (h *BookingHandler) GuestBookings(c *gin.Context) {
	bookings, err := h.bookings.GuestBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, dto.CageBookingsFromDomain(bookings))
}
