package application

import (
	"context"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/pricing"
	"github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// MovieDTO is the API representation of a movie.
type MovieDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genre"`
	Duration    string   `json:"duration"`
	Rating      float64  `json:"rating"`
	AgeRating   string   `json:"age_rating"`
	Language    string   `json:"language"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
	ReleaseDate string   `json:"release_date"`
	Description string   `json:"description"`

	AverageRating   float64     `json:"average_rating"`
	TotalReviews    int         `json:"total_reviews"`
	RatingBreakdown map[int]int `json:"rating_breakdown,omitempty"`
	Reviews         []ReviewDTO `json:"reviews,omitempty"`
}

// ReviewDTO is the API representation of a movie review.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// MovieQuery filters and orders the movie listing.
type MovieQuery struct {
	Search string
	Genres []string
	Sort   string
}

// AddReviewRequest is a member's rating of a movie.
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// ShowtimeDTO is the API representation of a showtime.
type ShowtimeDTO struct {
	ID             string  `json:"id"`
	MovieID        string  `json:"movie_id"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Screen         string  `json:"screen"`
	ScreenType     string  `json:"screen_type"`
	Price          float64 `json:"price"`
	PriceLabel     string  `json:"price_label"`
	AvailableSeats int     `json:"available_seats"`
}

// ConcessionDTO is the API representation of a concession item.
type ConcessionDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	PriceLabel  string   `json:"price_label"`
	Description string   `json:"description"`
	Sizes       []string `json:"sizes,omitempty"`
}

// CatalogService serves the read-only movie and concession catalogs.
type CatalogService struct {
	repo     catalog.CatalogRepository
	profiles profile.ProfileRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService. profiles supplies reviewer names.
func NewCatalogService(repo catalog.CatalogRepository, profiles profile.ProfileRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, profiles: profiles, logger: logger}
}

// SeedIfEmpty loads the launch catalogs on a fresh database.
func (s *CatalogService) SeedIfEmpty(ctx context.Context) error {
	movies, showtimes := catalog.SeedMovies()
	seeded, err := s.repo.Seed(ctx, movies, showtimes, catalog.SeedConcessions())
	if err != nil {
		return err
	}
	if seeded {
		s.logger.Info("catalogs seeded",
			zap.Int("movies", len(movies)),
			zap.Int("showtimes", len(showtimes)),
		)
	}
	return nil
}

// ListMovies returns the movies matching q, ordered by q.Sort.
func (s *CatalogService) ListMovies(ctx context.Context, q MovieQuery) ([]MovieDTO, error) {
	movies, err := s.repo.FindMovies(ctx)
	if err != nil {
		return nil, err
	}
	movies = catalog.Browse(movies, catalog.MovieFilter{
		Search: q.Search,
		Genres: q.Genres,
		Sort:   catalog.ParseSortOrder(q.Sort),
	})
	dtos := make([]MovieDTO, 0, len(movies))
	if err := copier.Copy(&dtos, &movies); err != nil {
		return nil, err
	}
	return dtos, nil
}

// GetMovie returns one movie with its reviews, newest first.
func (s *CatalogService) GetMovie(ctx context.Context, id string) (*MovieDTO, error) {
	m, err := s.repo.FindMovieByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.FindReviewsByMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	var dto MovieDTO
	if err := copier.Copy(&dto, m); err != nil {
		return nil, err
	}
	dto.RatingBreakdown = catalog.RatingBreakdown(reviews)
	if len(reviews) > 0 {
		if err := copier.Copy(&dto.Reviews, &reviews); err != nil {
			return nil, err
		}
	}
	return &dto, nil
}

// AddReview records a review by userID and returns the movie with updated ratings.
func (s *CatalogService) AddReview(ctx context.Context, userID uuid.UUID, movieID string, req AddReviewRequest) (*MovieDTO, error) {
	author, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	review, err := catalog.NewReview(movieID, userID, author.Name(), req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.AddReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review added",
		zap.String("movie_id", movieID),
		zap.String("user_id", userID.String()),
		zap.Int("rating", req.Rating),
	)
	return s.GetMovie(ctx, movieID)
}

// ListShowtimes returns the showtimes of a movie.
func (s *CatalogService) ListShowtimes(ctx context.Context, movieID string) ([]ShowtimeDTO, error) {
	if _, err := s.repo.FindMovieByID(ctx, movieID); err != nil {
		return nil, err
	}
	showtimes, err := s.repo.FindShowtimesByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ShowtimeDTO, len(showtimes))
	for i := range showtimes {
		if err := copier.Copy(&dtos[i], &showtimes[i]); err != nil {
			return nil, err
		}
		dtos[i].ScreenType = string(showtimes[i].ScreenType)
		dtos[i].PriceLabel = pricing.FormatAmount(showtimes[i].Price)
	}
	return dtos, nil
}

// ListConcessions returns the concession menu.
func (s *CatalogService) ListConcessions(ctx context.Context) ([]ConcessionDTO, error) {
	items, err := s.repo.FindConcessions(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]ConcessionDTO, len(items))
	for i := range items {
		if err := copier.Copy(&dtos[i], &items[i]); err != nil {
			return nil, err
		}
		dtos[i].PriceLabel = pricing.FormatAmount(items[i].Price)
	}
	return dtos, nil
}
