package handler

import (
	"net/http"

	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/middleware"
	"github.com/cinemax-hub/service-checkout/internal/common/response"
	"github.com/gin-gonic/gin"
)

// BookingHandler serves the signed-in user's profile, bookings and tickets.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers profile and booking routes.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.GET("/profile", authMW, h.GetProfile)

	bookings := r.Group("/bookings")
	bookings.Use(authMW)
	{
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/ticket.png", h.GetTicket)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

// GetProfile handles GET /api/v1/profile.
func (h *BookingHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id", "booking ID")
	if !ok {
		return
	}

	dto, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// GetTicket handles GET /api/v1/bookings/:id/ticket.png.
func (h *BookingHandler) GetTicket(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id", "booking ID")
	if !ok {
		return
	}

	png, err := h.service.RenderTicket(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", png)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id", "booking ID")
	if !ok {
		return
	}

	dto, err := h.service.CancelBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}
