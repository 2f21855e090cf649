package handler

import (
	"context"

	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/middleware"
	"github.com/cinemax-hub/service-checkout/internal/common/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SelectMovieRequest picks the movie of a session.
type SelectMovieRequest struct {
	MovieID string `json:"movie_id" binding:"required"`
}

// ToggleSeatRequest selects or releases one seat.
type ToggleSeatRequest struct {
	SeatID string `json:"seat_id" binding:"required"`
}

// SelectShowtimeRequest picks the showtime of a session.
type SelectShowtimeRequest struct {
	ShowtimeID string `json:"showtime_id" binding:"required"`
}

// CheckoutHandler drives checkout sessions over HTTP.
type CheckoutHandler struct {
	service *application.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *application.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers all checkout session routes.
func (h *CheckoutHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	sessions := r.Group("/checkout/sessions")
	sessions.Use(middleware.AuthMiddleware(jwtManager))
	{
		sessions.POST("", h.StartSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.AbandonSession)
		sessions.POST("/:id/movie", h.SelectMovie)
		sessions.POST("/:id/showtime", h.SelectShowtime)
		sessions.POST("/:id/seats/toggle", h.ToggleSeat)
		sessions.POST("/:id/seats/confirm", h.ConfirmSeats)
		sessions.POST("/:id/proceed", h.ProceedToCheckout)
		sessions.POST("/:id/back", h.Back)
		sessions.POST("/:id/reset", h.Reset)
		sessions.POST("/:id/cart/items", h.AddItem)
		sessions.PUT("/:id/cart/items/:itemId", h.UpdateQuantity)
		sessions.DELETE("/:id/cart/items/:itemId", h.RemoveItem)
		sessions.POST("/:id/promo", h.ApplyPromo)
		sessions.DELETE("/:id/promo", h.ClearPromo)
		sessions.GET("/:id/quote", h.Quote)
		sessions.POST("/:id/submit", h.Submit)
	}
}

type sessionAction func(ctx context.Context, userID, sessionID uuid.UUID) (*application.SessionDTO, error)

// run resolves the caller and session ID, then applies action.
func (h *CheckoutHandler) run(c *gin.Context, action sessionAction) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id", "session ID")
	if !ok {
		return
	}

	dto, err := action(c.Request.Context(), userID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// StartSession handles POST /api/v1/checkout/sessions.
func (h *CheckoutHandler) StartSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dto, err := h.service.StartSession(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// GetSession handles GET /api/v1/checkout/sessions/:id.
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	h.run(c, h.service.GetSession)
}

// AbandonSession handles DELETE /api/v1/checkout/sessions/:id.
func (h *CheckoutHandler) AbandonSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id", "session ID")
	if !ok {
		return
	}

	if err := h.service.AbandonSession(c.Request.Context(), userID, sessionID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "session abandoned"})
}

// SelectMovie handles POST /api/v1/checkout/sessions/:id/movie.
func (h *CheckoutHandler) SelectMovie(c *gin.Context) {
	var req SelectMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.run(c, func(ctx context.Context, userID, sessionID uuid.UUID) (*application.SessionDTO, error) {
		return h.service.SelectMovie(ctx, userID, sessionID, req.MovieID)
	})
}

// SelectShowtime handles POST /api/v1/checkout/sessions/:id/showtime.
func (h *CheckoutHandler) SelectShowtime(c *gin.Context) {
	var req SelectShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.run(c, func(ctx context.Context, userID, sessionID uuid.UUID) (*application.SessionDTO, error) {
		return h.service.SelectShowtime(ctx, userID, sessionID, req.ShowtimeID)
	})
}

// ToggleSeat handles POST /api/v1/checkout/sessions/:id/seats/toggle.
func (h *CheckoutHandler) ToggleSeat(c *gin.Context) {
	var req ToggleSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.run(c, func(ctx context.Context, userID, sessionID uuid.UUID) (*application.SessionDTO, error) {
		return h.service.ToggleSeat(ctx, userID, sessionID, req.SeatID)
	})
}

// ConfirmSeats handles POST /api/v1/checkout/sessions/:id/seats/confirm.
func (h *CheckoutHandler) ConfirmSeats(c *gin.Context) {
	h.run(c, h.service.ConfirmSeats)
}

// ProceedToCheckout handles POST /api/v1/checkout/sessions/:id/proceed.
func (h *CheckoutHandler) ProceedToCheckout(c *gin.Context) {
	h.run(c, h.service.ProceedToCheckout)
}

// Back handles POST /api/v1/checkout/sessions/:id/back.
func (h *CheckoutHandler) Back(c *gin.Context) {
	h.run(c, h.service.Back)
}

// Reset handles POST /api/v1/checkout/sessions/:id/reset.
func (h *CheckoutHandler) Reset(c *gin.Context) {
	h.run(c, h.service.Reset)
}

// AddItem handles POST /api/v1/checkout/sessions/:id/cart/items.
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	var req application.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.run(c, func(ctx context.Context, userID, sessionID uuid.UUID) (*application.SessionDTO, error) {
		return h.service.AddItem(ctx, userID, sessionID, req)
	})
}

// UpdateQuantity handles PUT /api/v1/checkout/sessions/:id/cart/items/:itemId.
func (h *CheckoutHandler) UpdateQuantity(c *gin.Context) {
	var req application.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	itemID := c.Param("itemId")
	h.run(c, func(ctx context.Context, userID, sessionID uuid.UUID) (*application.SessionDTO, error) {
		return h.service.UpdateQuantity(ctx, userID, sessionID, itemID, *req.Quantity)
	})
}

// RemoveItem handles DELETE /api/v1/checkout/sessions/:id/cart/items/:itemId.
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	itemID := c.Param("itemId")
	h.run(c, func(ctx context.Context, userID, sessionID uuid.UUID) (*application.SessionDTO, error) {
		return h.service.RemoveItem(ctx, userID, sessionID, itemID)
	})
}

// ApplyPromo handles POST /api/v1/checkout/sessions/:id/promo.
func (h *CheckoutHandler) ApplyPromo(c *gin.Context) {
	var req application.ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.run(c, func(ctx context.Context, userID, sessionID uuid.UUID) (*application.SessionDTO, error) {
		return h.service.ApplyPromo(ctx, userID, sessionID, req.Code)
	})
}

// ClearPromo handles DELETE /api/v1/checkout/sessions/:id/promo.
func (h *CheckoutHandler) ClearPromo(c *gin.Context) {
	h.run(c, h.service.ClearPromo)
}

// Quote handles GET /api/v1/checkout/sessions/:id/quote.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id", "session ID")
	if !ok {
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), userID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, quote)
}

// Submit handles POST /api/v1/checkout/sessions/:id/submit.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id", "session ID")
	if !ok {
		return
	}

	result, err := h.service.Submit(c.Request.Context(), userID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
