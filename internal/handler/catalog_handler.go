package handler

import (
	"strings"

	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/middleware"
	"github.com/cinemax-hub/service-checkout/internal/common/response"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public movie, showtime and concession catalogs.
type CatalogHandler struct {
	service *application.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes. Reading is public; posting a review needs a token.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	cat := r.Group("/catalog")
	{
		cat.GET("/movies", h.ListMovies)
		cat.GET("/movies/:id", h.GetMovie)
		cat.GET("/movies/:id/showtimes", h.ListShowtimes)
		cat.GET("/concessions", h.ListConcessions)
		cat.POST("/movies/:id/reviews", middleware.AuthMiddleware(jwtManager), h.AddReview)
	}
}

// ListMovies handles GET /api/v1/catalog/movies?search=&genre=&sort=.
// genre may repeat or hold a comma separated list.
func (h *CatalogHandler) ListMovies(c *gin.Context) {
	var genres []string
	for _, v := range c.QueryArray("genre") {
		for _, g := range strings.Split(v, ",") {
			if g = strings.TrimSpace(g); g != "" {
				genres = append(genres, g)
			}
		}
	}

	movies, err := h.service.ListMovies(c.Request.Context(), application.MovieQuery{
		Search: c.Query("search"),
		Genres: genres,
		Sort:   c.Query("sort"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, movies)
}

// GetMovie handles GET /api/v1/catalog/movies/:id.
func (h *CatalogHandler) GetMovie(c *gin.Context) {
	movie, err := h.service.GetMovie(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, movie)
}

// AddReview handles POST /api/v1/catalog/movies/:id/reviews.
func (h *CatalogHandler) AddReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req application.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	movie, err := h.service.AddReview(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, movie)
}

// ListShowtimes handles GET /api/v1/catalog/movies/:id/showtimes.
func (h *CatalogHandler) ListShowtimes(c *gin.Context) {
	showtimes, err := h.service.ListShowtimes(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, showtimes)
}

// ListConcessions handles GET /api/v1/catalog/concessions.
func (h *CatalogHandler) ListConcessions(c *gin.Context) {
	items, err := h.service.ListConcessions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}
