package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovieModel is the GORM model for the movies table.
type MovieModel struct {
	ID          string   `gorm:"type:varchar(64);primaryKey"`
	Title       string   `gorm:"type:varchar(255);not null"`
	Genres      []string `gorm:"type:jsonb;serializer:json"`
	Duration    string   `gorm:"type:varchar(32)"`
	Rating      float64  `gorm:"type:double precision"`
	AgeRating   string   `gorm:"type:varchar(8)"`
	Language    string   `gorm:"type:varchar(64)"`
	Director    string   `gorm:"type:varchar(255)"`
	Cast        []string `gorm:"type:jsonb;serializer:json"`
	ReleaseDate string   `gorm:"type:varchar(20)"`
	Description string   `gorm:"type:text"`

	AverageRating float64 `gorm:"type:double precision;not null;default:0"`
	TotalReviews  int     `gorm:"not null;default:0"`
}

// TableName sets the table name.
func (MovieModel) TableName() string { return "movies" }

// ReviewModel is the GORM model for the movie_reviews table.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MovieID   string    `gorm:"type:varchar(64);not null;index:idx_reviews_movie_created,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName  string    `gorm:"type:varchar(255);not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text;not null"`
	Likes     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;index:idx_reviews_movie_created,priority:2"`
}

// TableName sets the table name.
func (ReviewModel) TableName() string { return "movie_reviews" }

// ShowtimeModel is the GORM model for the showtimes table.
type ShowtimeModel struct {
	ID             string  `gorm:"type:varchar(64);primaryKey"`
	MovieID        string  `gorm:"type:varchar(64);not null;index"`
	Date           string  `gorm:"type:varchar(20);not null"`
	Time           string  `gorm:"type:varchar(10);not null"`
	Screen         string  `gorm:"type:varchar(64)"`
	ScreenType     string  `gorm:"type:varchar(20);not null"`
	Price          float64 `gorm:"type:double precision;not null"`
	AvailableSeats int     `gorm:"not null;default:0"`
}

// TableName sets the table name.
func (ShowtimeModel) TableName() string { return "showtimes" }

// ConcessionModel is the GORM model for the concessions table.
type ConcessionModel struct {
	ID          string   `gorm:"type:varchar(64);primaryKey"`
	Name        string   `gorm:"type:varchar(255);not null"`
	Category    string   `gorm:"type:varchar(64);not null"`
	Price       float64  `gorm:"type:double precision;not null"`
	Description string   `gorm:"type:text"`
	Sizes       []string `gorm:"type:jsonb;serializer:json"`
}

// TableName sets the table name.
func (ConcessionModel) TableName() string { return "concessions" }

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindMovies returns every movie ordered by ID.
func (r *GormCatalogRepository) FindMovies(ctx context.Context) ([]catalog.Movie, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	movies := make([]catalog.Movie, len(models))
	for i := range models {
		movies[i] = toMovie(&models[i])
	}
	return movies, nil
}

// FindMovieByID returns a movie by ID.
func (r *GormCatalogRepository) FindMovieByID(ctx context.Context, id string) (*catalog.Movie, error) {
	var model MovieModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Movie", id)
		}
		return nil, err
	}
	m := toMovie(&model)
	return &m, nil
}

// FindShowtimesByMovie returns the showtimes of a movie in schedule order.
func (r *GormCatalogRepository) FindShowtimesByMovie(ctx context.Context, movieID string) ([]catalog.Showtime, error) {
	var models []ShowtimeModel
	if err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("date ASC, time ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	showtimes := make([]catalog.Showtime, len(models))
	for i := range models {
		showtimes[i] = toShowtime(&models[i])
	}
	return showtimes, nil
}

// FindShowtimeByID returns a showtime by ID.
func (r *GormCatalogRepository) FindShowtimeByID(ctx context.Context, id string) (*catalog.Showtime, error) {
	var model ShowtimeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Showtime", id)
		}
		return nil, err
	}
	st := toShowtime(&model)
	return &st, nil
}

// FindConcessions returns the concession menu ordered by category.
func (r *GormCatalogRepository) FindConcessions(ctx context.Context) ([]catalog.Concession, error) {
	var models []ConcessionModel
	if err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]catalog.Concession, len(models))
	for i := range models {
		items[i] = toConcession(&models[i])
	}
	return items, nil
}

// FindConcessionByID returns a concession item by ID.
func (r *GormCatalogRepository) FindConcessionByID(ctx context.Context, id string) (*catalog.Concession, error) {
	var model ConcessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Concession", id)
		}
		return nil, err
	}
	c := toConcession(&model)
	return &c, nil
}

// FindReviewsByMovie returns a movie's reviews, newest first.
func (r *GormCatalogRepository) FindReviewsByMovie(ctx context.Context, movieID string) ([]catalog.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	reviews := make([]catalog.Review, len(models))
	for i := range models {
		reviews[i] = toReview(&models[i])
	}
	return reviews, nil
}

// AddReview inserts the review and updates the movie's running average in one transaction.
func (r *GormCatalogRepository) AddReview(ctx context.Context, review catalog.Review) (*catalog.Movie, error) {
	var updated MovieModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&MovieModel{}).
			Where("id = ?", review.MovieID).
			UpdateColumns(map[string]interface{}{
				"average_rating": gorm.Expr("(average_rating * total_reviews + ?) / (total_reviews + 1)", review.Rating),
				"total_reviews":  gorm.Expr("total_reviews + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Movie", review.MovieID)
		}

		model := ReviewModel{
			ID: review.ID, MovieID: review.MovieID, UserID: review.UserID,
			UserName: review.UserName, Rating: review.Rating, Comment: review.Comment,
			Likes: review.Likes, CreatedAt: review.CreatedAt,
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", review.MovieID).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	m := toMovie(&updated)
	return &m, nil
}

// Seed writes the catalogs in one transaction when no movie exists yet.
// It reports whether anything was written.
func (r *GormCatalogRepository) Seed(ctx context.Context, movies []catalog.Movie, showtimes []catalog.Showtime, concessions []catalog.Concession) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&MovieModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		movieModels := make([]MovieModel, len(movies))
		for i, m := range movies {
			movieModels[i] = MovieModel{
				ID: m.ID, Title: m.Title, Genres: m.Genres, Duration: m.Duration,
				Rating: m.Rating, AgeRating: m.AgeRating, Language: m.Language,
				Director: m.Director, Cast: m.Cast, ReleaseDate: m.ReleaseDate,
				Description: m.Description, AverageRating: m.AverageRating,
				TotalReviews: m.TotalReviews,
			}
		}
		showtimeModels := make([]ShowtimeModel, len(showtimes))
		for i, s := range showtimes {
			showtimeModels[i] = ShowtimeModel{
				ID: s.ID, MovieID: s.MovieID, Date: s.Date, Time: s.Time,
				Screen: s.Screen, ScreenType: string(s.ScreenType), Price: s.Price,
				AvailableSeats: s.AvailableSeats,
			}
		}
		concessionModels := make([]ConcessionModel, len(concessions))
		for i, c := range concessions {
			concessionModels[i] = ConcessionModel{
				ID: c.ID, Name: c.Name, Category: c.Category, Price: c.Price,
				Description: c.Description, Sizes: c.Sizes,
			}
		}

		if len(movieModels) > 0 {
			if err := tx.Create(&movieModels).Error; err != nil {
				return err
			}
		}
		if len(showtimeModels) > 0 {
			if err := tx.Create(&showtimeModels).Error; err != nil {
				return err
			}
		}
		if len(concessionModels) > 0 {
			if err := tx.Create(&concessionModels).Error; err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}

func toMovie(m *MovieModel) catalog.Movie {
	return catalog.Movie{
		ID: m.ID, Title: m.Title, Genres: m.Genres, Duration: m.Duration,
		Rating: m.Rating, AgeRating: m.AgeRating, Language: m.Language,
		Director: m.Director, Cast: m.Cast, ReleaseDate: m.ReleaseDate,
		Description: m.Description, AverageRating: m.AverageRating,
		TotalReviews: m.TotalReviews,
	}
}

func toReview(m *ReviewModel) catalog.Review {
	return catalog.Review{
		ID: m.ID, MovieID: m.MovieID, UserID: m.UserID, UserName: m.UserName,
		Rating: m.Rating, Comment: m.Comment, Likes: m.Likes, CreatedAt: m.CreatedAt,
	}
}

func toShowtime(m *ShowtimeModel) catalog.Showtime {
	return catalog.Showtime{
		ID: m.ID, MovieID: m.MovieID, Date: m.Date, Time: m.Time,
		Screen: m.Screen, ScreenType: catalog.ScreenType(m.ScreenType),
		Price: m.Price, AvailableSeats: m.AvailableSeats,
	}
}

func toConcession(m *ConcessionModel) catalog.Concession {
	return catalog.Concession{
		ID: m.ID, Name: m.Name, Category: m.Category, Price: m.Price,
		Description: m.Description, Sizes: m.Sizes,
	}
}
