package profile

import (
	"strings"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/booking"
	"github.com/google/uuid"
)

// DefaultSignupBonus is credited to every new profile.
const DefaultSignupBonus int64 = 100

// BookingSummary is the profile-side view of a purchase.
type BookingSummary struct {
	ID           uuid.UUID      `json:"id"`
	MovieTitle   string         `json:"movie_title"`
	Showtime     string         `json:"showtime"`
	Seats        []string       `json:"seats"`
	Total        float64        `json:"total"`
	PointsEarned int64          `json:"points_earned"`
	Status       booking.Status `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}

// SummaryOf builds the profile summary of a booking.
func SummaryOf(b *booking.Booking) BookingSummary {
	return BookingSummary{
		ID:           b.ID(),
		MovieTitle:   b.MovieTitle(),
		Showtime:     b.ShowtimeLabel(),
		Seats:        b.Seats(),
		Total:        b.Total(),
		PointsEarned: b.PointsEarned(),
		Status:       b.Status(),
		CreatedAt:    b.CreatedAt(),
	}
}

// Profile is the user aggregate: identity fields, loyalty balance and booking history.
type Profile struct {
	id            uuid.UUID
	name          string
	email         string
	phone         string
	birthday      string
	avatar        string
	loyaltyPoints int64
	memberSince   time.Time
	bookings      []BookingSummary
}

// NewProfile creates a profile for a freshly signed-up identity.
func NewProfile(id uuid.UUID, name, email, phone, birthday string, bonus int64) (*Profile, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("profile id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("invalid email")
	}
	if bonus < 0 {
		return nil, domain.NewValidationError("signup bonus cannot be negative")
	}
	return &Profile{
		id:            id,
		name:          strings.TrimSpace(name),
		email:         strings.ToLower(strings.TrimSpace(email)),
		phone:         phone,
		birthday:      birthday,
		loyaltyPoints: bonus,
		memberSince:   time.Now().UTC(),
	}, nil
}

// ApplyBooking mirrors a committed booking locally: newest first, points bumped.
// The store is the source of truth; this only keeps the in-memory copy current.
func (p *Profile) ApplyBooking(b *booking.Booking) {
	p.bookings = append([]BookingSummary{SummaryOf(b)}, p.bookings...)
	p.loyaltyPoints += b.PointsEarned()
}

// WithBookings replaces the booking history, e.g. after loading it from the purchase log.
func (p *Profile) WithBookings(bookings []*booking.Booking) {
	p.bookings = make([]BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		p.bookings = append(p.bookings, SummaryOf(b))
	}
}

func (p *Profile) ID() uuid.UUID              { return p.id }
func (p *Profile) Name() string               { return p.name }
func (p *Profile) Email() string              { return p.email }
func (p *Profile) Phone() string              { return p.phone }
func (p *Profile) Birthday() string           { return p.birthday }
func (p *Profile) Avatar() string             { return p.avatar }
func (p *Profile) LoyaltyPoints() int64       { return p.loyaltyPoints }
func (p *Profile) MemberSince() time.Time     { return p.memberSince }
func (p *Profile) Bookings() []BookingSummary { return append([]BookingSummary(nil), p.bookings...) }

// Reconstitute rebuilds a Profile from persisted data.
func Reconstitute(id uuid.UUID, name, email, phone, birthday, avatar string, loyaltyPoints int64, memberSince time.Time) *Profile {
	return &Profile{
		id:            id,
		name:          name,
		email:         email,
		phone:         phone,
		birthday:      birthday,
		avatar:        avatar,
		loyaltyPoints: loyaltyPoints,
		memberSince:   memberSince,
	}
}
