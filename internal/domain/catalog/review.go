package catalog

import (
	"strings"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/google/uuid"
)

// Review is one member's rating of a movie.
type Review struct {
	ID        uuid.UUID `json:"id"`
	MovieID   string    `json:"movie_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReview validates a rating of 1 to 5 stars with a non-blank comment.
func NewReview(movieID string, userID uuid.UUID, userName string, rating int, comment string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, domain.NewValidationError("rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return Review{}, domain.NewValidationError("comment is required")
	}
	return Review{
		ID:        uuid.New(),
		MovieID:   movieID,
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AddRating folds rating into the running average.
func (m *Movie) AddRating(rating int) {
	total := m.AverageRating*float64(m.TotalReviews) + float64(rating)
	m.TotalReviews++
	m.AverageRating = total / float64(m.TotalReviews)
}

// RatingBreakdown counts reviews per star, keyed 1 to 5.
func RatingBreakdown(reviews []Review) map[int]int {
	out := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range reviews {
		out[r.Rating]++
	}
	return out
}
