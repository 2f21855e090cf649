package handler

import (
	"time"

	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/middleware"
	"github.com/cinemax-hub/service-checkout/internal/common/response"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin requests for purchases, credits and promos.
type AdminHandler struct {
	bookingService  *application.BookingService
	promoService    *application.PromoService
	creditService   *application.CreditService
	reconcileMinAge time.Duration
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	bookingService *application.BookingService,
	promoService *application.PromoService,
	creditService *application.CreditService,
	reconcileMinAge time.Duration,
) *AdminHandler {
	return &AdminHandler{
		bookingService:  bookingService,
		promoService:    promoService,
		creditService:   creditService,
		reconcileMinAge: reconcileMinAge,
	}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/purchases", h.ListPurchases)
		admin.GET("/purchases/stats", h.PurchaseStats)
		admin.POST("/reconcile", h.Reconcile)
		admin.GET("/promos", h.ListPromos)
		admin.POST("/promos", h.CreatePromo)
	}
}

// ListPurchases handles GET /api/v1/admin/purchases.
func (h *AdminHandler) ListPurchases(c *gin.Context) {
	page, limit := pageParams(c)

	purchases, total, err := h.bookingService.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, purchases, total, page, limit)
}

// PurchaseStats handles GET /api/v1/admin/purchases/stats.
func (h *AdminHandler) PurchaseStats(c *gin.Context) {
	stats, err := h.bookingService.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// Reconcile handles POST /api/v1/admin/reconcile.
func (h *AdminHandler) Reconcile(c *gin.Context) {
	result, err := h.creditService.ReconcilePending(c.Request.Context(), h.reconcileMinAge)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListPromos handles GET /api/v1/admin/promos.
func (h *AdminHandler) ListPromos(c *gin.Context) {
	promos, err := h.promoService.ListPromos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, promos)
}

// CreatePromo handles POST /api/v1/admin/promos.
func (h *AdminHandler) CreatePromo(c *gin.Context) {
	var req application.CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.promoService.CreatePromo(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
