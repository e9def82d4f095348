package handler

import (
	"github.com/VB6Enjoyer/snakebnb/internal/dto"
	"github.com/VB6Enjoyer/snakebnb/internal/service"
	"github.com/VB6Enjoyer/snakebnb/pkg/response"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// OwnerHandler handles account and snake requests
type OwnerHandler struct {
	accounts service.AccountService
	snakes   service.SnakeService
}

// NewOwnerHandler creates a new owner handler
func NewOwnerHandler(accounts service.AccountService, snakes service.SnakeService) *OwnerHandler {
	return &OwnerHandler{accounts: accounts, snakes: snakes}
}

// Create handles POST /owners
func (h *OwnerHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.owner.create")
	defer span.End()

	var req dto.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	owner, err := h.accounts.CreateAccount(ctx, req.Name, req.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}
	response.Created(c, dto.OwnerFromDomain(owner))
}

// FindByEmail handles GET /owners?email=
func (h *OwnerHandler) FindByEmail(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.owner.find_by_email")
	defer span.End()

	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, "email query parameter is required")
		return
	}

	owner, err := h.accounts.FindByEmail(ctx, email)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, dto.OwnerFromDomain(owner))
}

// Get handles GET /owners/:id
func (h *OwnerHandler) Get(c *gin.Context) {
	owner, err := h.accounts.GetOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, dto.OwnerFromDomain(owner))
}

// AddSnake handles POST /owners/:id/snakes
func (h *OwnerHandler) AddSnake(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.owner.add_snake")
	defer span.End()

	ownerID := c.Param("id")
	span.SetAttributes(attribute.String("owner_id", ownerID))

	var req dto.CreateSnakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	snake, err := h.snakes.AddSnake(ctx, ownerID, service.SnakeInput{
		Name:       req.Name,
		Species:    req.Species,
		Length:     req.Length,
		IsVenomous: req.IsVenomous,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}
	response.Created(c, dto.SnakeFromDomain(snake))
}

// ListSnakes handles GET /owners/:id/snakes
func (h *OwnerHandler) ListSnakes(c *gin.Context) {
	snakes, err := h.snakes.ListForOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, dto.SnakesFromDomain(snakes))
}
