package booking

import (
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/cart"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/pricing"
	"github.com/cinemax-hub/service-checkout/internal/domain/seat"
	"github.com/google/uuid"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// CreditStatus tracks whether the loyalty points of a booking reached the profile.
// A pending booking is the intent record picked up by the reconciler.
type CreditStatus string

const (
	CreditPending  CreditStatus = "pending"
	CreditCredited CreditStatus = "credited"
)

// SnackLine is the concession snapshot stored with a booking.
type SnackLine struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	UnitPrice float64 `json:"unit_price"`
}

// Booking is a committed purchase. Total and seats never change after creation.
type Booking struct {
	id            uuid.UUID
	userID        uuid.UUID
	movieID       string
	movieTitle    string
	showtimeID    string
	showtime      string
	showtimeLabel string
	seats         []string
	snacks        []SnackLine
	total         float64
	pointsEarned  int64
	promoCode     string
	status        Status
	creditStatus  CreditStatus
	creditedAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking snapshots a checkout into a confirmed booking with pending loyalty credit.
// Every seat must be in the selected state; occupied seats are rejected.
func NewBooking(userID uuid.UUID, movie catalog.Movie, showtime catalog.Showtime, seats []seat.Seat, c cart.Cart, total float64, promoCode string) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.NewPreconditionError("an authenticated user is required")
	}
	if movie.ID == "" {
		return nil, domain.NewPreconditionError("a movie must be selected")
	}
	if showtime.ID == "" {
		return nil, domain.NewPreconditionError("a showtime must be selected")
	}
	if total < 0 {
		return nil, domain.NewValidationError("total cannot be negative")
	}
	for _, s := range seats {
		if s.Status != seat.StatusSelected {
			return nil, domain.NewPreconditionError("seat " + s.ID + " is not selected")
		}
	}

	snacks := make([]SnackLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		snacks = append(snacks, SnackLine{
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			Quantity:  l.Quantity,
			Size:      string(l.Size),
			UnitPrice: l.Item.Price,
		})
	}

	now := time.Now().UTC()
	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		movieID:       movie.ID,
		movieTitle:    movie.Title,
		showtimeID:    showtime.ID,
		showtime:      showtime.Descriptor(),
		showtimeLabel: showtime.Label(),
		seats:         seat.IDs(seats),
		snacks:        snacks,
		total:         total,
		pointsEarned:  pricing.PointsFor(total),
		promoCode:     promoCode,
		status:        StatusConfirmed,
		creditStatus:  CreditPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Cancel moves a confirmed booking to cancelled. Points already credited stay.
func (b *Booking) Cancel() error {
	if b.status != StatusConfirmed {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return nil
}

// MarkCredited records that the loyalty increment was applied.
func (b *Booking) MarkCredited() error {
	if b.creditStatus != CreditPending {
		return domain.NewInvalidStateError(string(b.creditStatus), string(CreditCredited))
	}
	now := time.Now().UTC()
	b.creditStatus = CreditCredited
	b.creditedAt = &now
	b.updatedAt = now
	return nil
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) UserID() uuid.UUID          { return b.userID }
func (b *Booking) MovieID() string            { return b.movieID }
func (b *Booking) MovieTitle() string         { return b.movieTitle }
func (b *Booking) ShowtimeID() string         { return b.showtimeID }
func (b *Booking) Showtime() string           { return b.showtime }
func (b *Booking) ShowtimeLabel() string      { return b.showtimeLabel }
func (b *Booking) Seats() []string            { return append([]string(nil), b.seats...) }
func (b *Booking) Snacks() []SnackLine        { return append([]SnackLine(nil), b.snacks...) }
func (b *Booking) Total() float64             { return b.total }
func (b *Booking) PointsEarned() int64        { return b.pointsEarned }
func (b *Booking) PromoCode() string          { return b.promoCode }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) CreditStatus() CreditStatus { return b.creditStatus }
func (b *Booking) CreditedAt() *time.Time     { return b.creditedAt }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }

// Reconstitute rebuilds a Booking from persisted data.
func Reconstitute(
	id, userID uuid.UUID,
	movieID, movieTitle, showtimeID, showtime, showtimeLabel string,
	seats []string,
	snacks []SnackLine,
	total float64,
	pointsEarned int64,
	promoCode string,
	status Status,
	creditStatus CreditStatus,
	creditedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		movieID:       movieID,
		movieTitle:    movieTitle,
		showtimeID:    showtimeID,
		showtime:      showtime,
		showtimeLabel: showtimeLabel,
		seats:         seats,
		snacks:        snacks,
		total:         total,
		pointsEarned:  pointsEarned,
		promoCode:     promoCode,
		status:        status,
		creditStatus:  creditStatus,
		creditedAt:    creditedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}
