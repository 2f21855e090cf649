package application

import (
	"context"
	"testing"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCatalogService(store *memStore) *CatalogService {
	return NewCatalogService(memCatalog{store}, memProfiles{store}, zap.NewNop())
}

func TestCatalogService_Listings(t *testing.T) {
	svc := newCatalogService(newMemStore())
	ctx := context.Background()

	movies, err := svc.ListMovies(ctx, MovieQuery{Sort: "title"})
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "m2", movies[0].ID)
	assert.NotEmpty(t, movies[0].Genres)

	showtimes, err := svc.ListShowtimes(ctx, "m2")
	require.NoError(t, err)
	require.Len(t, showtimes, 2)
	assert.Equal(t, "3D", showtimes[0].ScreenType)
	assert.Equal(t, "12.00", showtimes[0].PriceLabel)

	_, err = svc.ListShowtimes(ctx, "m404")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	items, err := svc.ListConcessions(ctx)
	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, "6.50", items[0].PriceLabel)
	assert.Equal(t, []string{"Small", "Medium", "Large"}, items[0].Sizes)
}

func TestCatalogService_ListMoviesFilters(t *testing.T) {
	svc := newCatalogService(newMemStore())
	ctx := context.Background()

	movies, err := svc.ListMovies(ctx, MovieQuery{Search: "riley"})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "m2", movies[0].ID)

	movies, err = svc.ListMovies(ctx, MovieQuery{Genres: []string{"aventura"}})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "m1", movies[0].ID)

	movies, err = svc.ListMovies(ctx, MovieQuery{Sort: "rating"})
	require.NoError(t, err)
	assert.Equal(t, "m1", movies[0].ID)

	movies, err = svc.ListMovies(ctx, MovieQuery{Sort: "newest"})
	require.NoError(t, err)
	assert.Equal(t, "m2", movies[0].ID)

	movies, err = svc.ListMovies(ctx, MovieQuery{Search: "nada disso"})
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestCatalogService_AddReview(t *testing.T) {
	store := newMemStore()
	svc := newCatalogService(store)
	ctx := context.Background()
	ana := store.addProfile("Ana", "ana@example.com")
	bia := store.addProfile("Bia", "bia@example.com")

	_, err := svc.AddReview(ctx, ana.ID(), "m1", AddReviewRequest{Rating: 5, Comment: "Épico"})
	require.NoError(t, err)
	movie, err := svc.AddReview(ctx, bia.ID(), "m1", AddReviewRequest{Rating: 2, Comment: "Longo demais"})
	require.NoError(t, err)

	assert.Equal(t, 2, movie.TotalReviews)
	assert.InDelta(t, 3.5, movie.AverageRating, 1e-9)
	require.Len(t, movie.Reviews, 2)
	assert.Equal(t, "Bia", movie.Reviews[0].UserName)
	assert.Equal(t, "Ana", movie.Reviews[1].UserName)
	assert.Equal(t, 1, movie.RatingBreakdown[5])
	assert.Equal(t, 1, movie.RatingBreakdown[2])

	popular, err := svc.ListMovies(ctx, MovieQuery{})
	require.NoError(t, err)
	assert.Equal(t, "m1", popular[0].ID)
}

func TestCatalogService_AddReviewRejections(t *testing.T) {
	store := newMemStore()
	svc := newCatalogService(store)
	ctx := context.Background()
	ana := store.addProfile("Ana", "ana@example.com")

	_, err := svc.AddReview(ctx, ana.ID(), "m1", AddReviewRequest{Rating: 7, Comment: "?"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddReview(ctx, ana.ID(), "m404", AddReviewRequest{Rating: 4, Comment: "ok"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddReview(ctx, uuid.New(), "m1", AddReviewRequest{Rating: 4, Comment: "ok"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
