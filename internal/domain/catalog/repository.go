package catalog

import "context"

// CatalogRepository reads the reference catalogs. Seed writes them once on an empty store.
type CatalogRepository interface {
	FindMovies(ctx context.Context) ([]Movie, error)
	FindMovieByID(ctx context.Context, id string) (*Movie, error)
	FindShowtimesByMovie(ctx context.Context, movieID string) ([]Showtime, error)
	FindShowtimeByID(ctx context.Context, id string) (*Showtime, error)
	FindConcessions(ctx context.Context) ([]Concession, error)
	FindConcessionByID(ctx context.Context, id string) (*Concession, error)

	// FindReviewsByMovie returns a movie's reviews, newest first.
	FindReviewsByMovie(ctx context.Context, movieID string) ([]Review, error)
	// AddReview stores r and folds its rating into the movie's average in one write.
	AddReview(ctx context.Context, r Review) (*Movie, error)

	Seed(ctx context.Context, movies []Movie, showtimes []Showtime, concessions []Concession) (bool, error)
}
