package handler

import (
	"github.com/VB6Enjoyer/snakebnb/internal/dto"
	"github.com/VB6Enjoyer/snakebnb/internal/service"
	"github.com/VB6Enjoyer/snakebnb/pkg/response"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// CageHandler handles host side cage requests
type CageHandler struct {
	cages service.CageService
}

// NewCageHandler creates a new cage handler
func NewCageHandler(cages service.CageService) *CageHandler {
	return &CageHandler{cages: cages}
}

// Register handles POST /owners/:id/cages
func (h *CageHandler) Register(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.cage.register")
	defer span.End()

	var req dto.RegisterCageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cage, err := h.cages.RegisterCage(ctx, c.Param("id"), req.ToSpec())
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}
	response.Created(c, dto.CageFromDomain(cage))
}

// ListForOwner handles GET /owners/:id/cages
func (h *CageHandler) ListForOwner(c *gin.Context) {
	cages, err := h.cages.ListForOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, dto.CagesFromDomain(cages))
}

// AddAvailability handles POST /cages/:id/availability
func (h *CageHandler) AddAvailability(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.cage.add_availability")
	defer span.End()

	cageID := c.Param("id")
	span.SetAttributes(attribute.String("cage_id", cageID))

	var req dto.AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		badRequest(c, err)
		return
	}

	cage, err := h.cages.AddAvailability(ctx, cageID, start, *req.Days)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}
	response.Created(c, dto.CageFromDomain(cage))
}

// HostedBookings handles GET /owners/:id/hosted-bookings
func (h *CageHandler) HostedBookings(c *gin.Context) {
	bookings, err := h.cages.HostedBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, dto.CageBookingsFromDomain(bookings))
}
