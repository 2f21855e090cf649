package catalog

import (
	"fmt"
)

// ScreenType is the projection format of a showtime.
type ScreenType string

const (
	ScreenStandard ScreenType = "Standard"
	ScreenIMAX     ScreenType = "IMAX"
	Screen3D       ScreenType = "3D"
	Screen4DX      ScreenType = "4DX"
)

// Movie is read-only reference data.
type Movie struct {
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

	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// Showtime is a scheduled screening of a movie.
type Showtime struct {
	ID             string     `json:"id"`
	MovieID        string     `json:"movie_id"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	Screen         string     `json:"screen"`
	ScreenType     ScreenType `json:"screen_type"`
	Price          float64    `json:"price"`
	AvailableSeats int        `json:"available_seats"`
}

// Descriptor is the showtime text stored on purchase records.
func (s Showtime) Descriptor() string {
	return fmt.Sprintf("%s at %s", s.Date, s.Time)
}

// Label is Descriptor plus the screen name, shown on booking summaries.
func (s Showtime) Label() string {
	return fmt.Sprintf("%s - %s", s.Descriptor(), s.Screen)
}

// Concession is a purchasable snack or drink.
type Concession struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Sizes       []string `json:"sizes,omitempty"`
}

// HasSizes reports whether the item is sold in size tiers.
func (c Concession) HasSizes() bool {
	return len(c.Sizes) > 0
}
