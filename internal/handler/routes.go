package handler

import "github.com/gin-gonic/gin"

// Handlers groups the API handlers
type Handlers struct {
	Health  *HealthHandler
	Owner   *OwnerHandler
	Cage    *CageHandler
	Booking *BookingHandler
}

// RegisterRoutes mounts the probes on router and the API under /api/v1.
// bookingMiddleware runs in front of POST /cages/:id/bookings only.
func RegisterRoutes(router *gin.Engine, h *Handlers, bookingMiddleware ...gin.HandlerFunc) {
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)

	v1 := router.Group("/api/v1")
	{
		owners := v1.Group("/owners")
		owners.POST("", h.Owner.Create)
		owners.GET("", h.Owner.FindByEmail)
		owners.GET("/:id", h.Owner.Get)
		owners.POST("/:id/snakes", h.Owner.AddSnake)
		owners.GET("/:id/snakes", h.Owner.ListSnakes)
		owners.POST("/:id/cages", h.Cage.Register)
		owners.GET("/:id/cages", h.Cage.ListForOwner)
		owners.GET("/:id/bookings", h.Booking.GuestBookings)
		owners.GET("/:id/hosted-bookings", h.Cage.HostedBookings)

		cages := v1.Group("/cages")
		cages.GET("/available", h.Booking.Available)
		cages.POST("/:id/availability", h.Cage.AddAvailability)
		cages.POST("/:id/bookings", append(bookingMiddleware, h.Booking.Book)...)
	}
}
