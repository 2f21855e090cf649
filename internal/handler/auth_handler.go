package handler

import (
	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/middleware"
	"github.com/cinemax-hub/service-checkout/internal/common/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, signin and signout.
type AuthHandler struct {
	service *application.IdentityService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.IdentityService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers the auth routes.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	a := r.Group("/auth")
	{
		a.POST("/signup", h.SignUp)
		a.POST("/signin", h.SignIn)
		a.POST("/signout", middleware.AuthMiddleware(jwtManager), h.SignOut)
	}
}

// SignUp handles POST /api/v1/auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req application.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// SignIn handles POST /api/v1/auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req application.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SignOut handles POST /api/v1/auth/signout.
func (h *AuthHandler) SignOut(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	email := middleware.GetUserEmail(c)
	role := middleware.GetUserRole(c)
	if err := h.service.SignOut(c.Request.Context(), userID, email, role); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "signed out"})
}
