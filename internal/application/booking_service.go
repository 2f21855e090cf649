package application

import (
	"context"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/adapter"
	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/cinemax-hub/service-checkout/internal/domain/booking"
	"github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingDTO is the API representation of a purchase.
type BookingDTO struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	MovieID       string              `json:"movie_id"`
	MovieTitle    string              `json:"movie_title"`
	ShowtimeID    string              `json:"showtime_id"`
	Showtime      string              `json:"showtime"`
	ShowtimeLabel string              `json:"showtime_label"`
	Seats         []string            `json:"seats"`
	Snacks        []booking.SnackLine `json:"snacks"`
	Total         float64             `json:"total"`
	PointsEarned  int64               `json:"points_earned"`
	PromoCode     string              `json:"promo_code,omitempty"`
	Status        string              `json:"status"`
	CreditStatus  string              `json:"credit_status"`
	CreditedAt    *time.Time          `json:"credited_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ProfileDTO is the API representation of a user profile.
type ProfileDTO struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Email         string                   `json:"email"`
	Phone         string                   `json:"phone,omitempty"`
	Birthday      string                   `json:"birthday,omitempty"`
	Avatar        string                   `json:"avatar,omitempty"`
	LoyaltyPoints int64                    `json:"loyalty_points"`
	NextTier      profile.TierProgress     `json:"next_tier"`
	MemberSince   time.Time                `json:"member_since"`
	Bookings      []profile.BookingSummary `json:"bookings"`
}

// BookingStatsDTO holds purchase statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalRevenue   float64          `json:"total_revenue"`
	TotalBookings  int64            `json:"total_bookings"`
	ByStatus       map[string]int64 `json:"by_status"`
	ByCreditStatus map[string]int64 `json:"by_credit_status"`
}

// BookingService serves booking history, tickets and cancellations.
type BookingService struct {
	purchases booking.PurchaseRepository
	profiles  profile.ProfileRepository
	renderer  adapter.TicketRenderer
	publisher events.Publisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	purchases booking.PurchaseRepository,
	profiles profile.ProfileRepository,
	renderer adapter.TicketRenderer,
	publisher events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		purchases: purchases,
		profiles:  profiles,
		renderer:  renderer,
		publisher: publisher,
		logger:    logger,
	}
}

// GetProfile returns the profile with its booking history, newest first.
func (s *BookingService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.purchases.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.WithBookings(history)

	dto := toProfileDTO(p)
	return &dto, nil
}

// GetBooking returns one of the user's bookings.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error) {
	b, err := s.owned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(b)
	return &dto, nil
}

// RenderTicket returns the PNG ticket of a confirmed booking.
func (s *BookingService) RenderTicket(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, error) {
	b, err := s.owned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status() != booking.StatusConfirmed {
		return nil, domain.NewPreconditionError("tickets are only issued for confirmed bookings")
	}
	return s.renderer.Render(b)
}

// CancelBooking marks a booking cancelled. Seats, total and credited points stay as they are.
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error) {
	b, err := s.owned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(); err != nil {
		return nil, err
	}
	if err := s.purchases.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled", zap.String("booking_id", b.ID().String()))

	event := events.BookingCancelledEvent{
		BookingID:  b.ID(),
		UserID:     b.UserID(),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.TopicBookingEvents, events.BookingCancelled, b.ID().String(), event); err != nil {
		s.logger.Error("failed to publish booking cancelled event", zap.Error(err))
	}

	dto := toBookingDTO(b)
	return &dto, nil
}

// --- Admin methods ---

// ListAllBookings returns a paginated list of all purchases (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.purchases.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos, total, nil
}

// GetBookingStats returns aggregate purchase statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	stats, err := s.purchases.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	return &BookingStatsDTO{
		TotalRevenue:   stats.Revenue,
		TotalBookings:  stats.Count,
		ByStatus:       stats.ByStatus,
		ByCreditStatus: stats.ByCreditStatus,
	}, nil
}

func (s *BookingService) owned(ctx context.Context, userID, bookingID uuid.UUID) (*booking.Booking, error) {
	b, err := s.purchases.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID() != userID {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}
	return b, nil
}

func toBookingDTO(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:            b.ID(),
		UserID:        b.UserID(),
		MovieID:       b.MovieID(),
		MovieTitle:    b.MovieTitle(),
		ShowtimeID:    b.ShowtimeID(),
		Showtime:      b.Showtime(),
		ShowtimeLabel: b.ShowtimeLabel(),
		Seats:         b.Seats(),
		Snacks:        b.Snacks(),
		Total:         b.Total(),
		PointsEarned:  b.PointsEarned(),
		PromoCode:     b.PromoCode(),
		Status:        string(b.Status()),
		CreditStatus:  string(b.CreditStatus()),
		CreditedAt:    b.CreditedAt(),
		CreatedAt:     b.CreatedAt(),
	}
}

func toProfileDTO(p *profile.Profile) ProfileDTO {
	bookings := p.Bookings()
	if bookings == nil {
		bookings = []profile.BookingSummary{}
	}
	return ProfileDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Email:         p.Email(),
		Phone:         p.Phone(),
		Birthday:      p.Birthday(),
		Avatar:        p.Avatar(),
		LoyaltyPoints: p.LoyaltyPoints(),
		NextTier:      profile.ProgressTowardNextTier(p.LoyaltyPoints()),
		MemberSince:   p.MemberSince(),
		Bookings:      bookings,
	}
}
