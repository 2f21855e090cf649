package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/cinemax-hub/service-checkout/internal/domain/booking"
	"github.com/cinemax-hub/service-checkout/internal/domain/cart"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/cinemax-hub/service-checkout/internal/domain/seat"
	"go.uber.org/zap"
)

// ErrLoyaltyCreditPending marks a commit whose purchase is recorded but whose points
// are not yet on the profile. The reconciler completes it.
var ErrLoyaltyCreditPending = errors.New("loyalty credit pending")

const (
	stepAppendPurchase = "append_purchase"
	stepCreditPoints   = "credit_loyalty_points"
	stepPublish        = "publish_booking_confirmed"

	defaultPublishTimeout = 2 * time.Second
)

// CommitRequest is the input of the booking commit pipeline.
type CommitRequest struct {
	User      *profile.Profile
	Movie     *catalog.Movie
	Showtime  *catalog.Showtime
	Seats     []seat.Seat
	Cart      cart.Cart
	Total     float64
	PromoCode string
}

// BookingSagaService runs the two-write booking commit.
type BookingSagaService struct {
	purchases booking.PurchaseRepository
	ledger    booking.LoyaltyLedger
	publisher events.Publisher
	logger    *zap.Logger

	// publishTimeout bounds each post-commit event write.
	publishTimeout time.Duration
}

// NewBookingSagaService creates a new BookingSagaService.
func NewBookingSagaService(
	purchases booking.PurchaseRepository,
	ledger booking.LoyaltyLedger,
	publisher events.Publisher,
	logger *zap.Logger,
) *BookingSagaService {
	return &BookingSagaService{
		purchases: purchases,
		ledger:    ledger,
		publisher:      publisher,
		logger:         logger,
		publishTimeout: defaultPublishTimeout,
	}
}

// CommitBookingSaga records the purchase (write 1), credits loyalty points (write 2)
// and then mirrors the booking on req.User.
//
// A write 1 failure returns a CommitError and leaves nothing behind. A write 2 failure
// returns a CommitError wrapping ErrLoyaltyCreditPending; the purchase stays recorded
// with a pending credit and req.User is not touched.
func (s *BookingSagaService) CommitBookingSaga(ctx context.Context, req CommitRequest) (*booking.Booking, error) {
	if req.User == nil {
		return nil, domain.NewPreconditionError("an authenticated user is required")
	}
	if req.Movie == nil {
		return nil, domain.NewPreconditionError("a movie must be selected")
	}
	if req.Showtime == nil {
		return nil, domain.NewPreconditionError("a showtime must be selected")
	}

	b, err := booking.NewBooking(req.User.ID(), *req.Movie, *req.Showtime, req.Seats, req.Cart, req.Total, req.PromoCode)
	if err != nil {
		return nil, err
	}

	saga := NewSaga("commit_booking", s.logger)

	// Append-only; a recorded purchase is never rolled back.
	saga.AddStep(SagaStep{
		Name: stepAppendPurchase,
		Execute: func(ctx context.Context) error {
			return s.purchases.Append(ctx, b)
		},
	})

	saga.AddStep(SagaStep{
		Name: stepCreditPoints,
		Execute: func(ctx context.Context) error {
			if _, err := s.ledger.CreditPoints(ctx, b.ID(), b.UserID(), b.PointsEarned()); err != nil {
				return err
			}
			if b.CreditStatus() == booking.CreditPending {
				return b.MarkCredited()
			}
			return nil
		},
	})

	saga.AddStep(SagaStep{
		Name: stepPublish,
		Execute: func(ctx context.Context) error {
			s.publishConfirmed(ctx, b)
			return nil
		},
	})

	if err := saga.Execute(ctx); err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) && stepErr.Step == stepCreditPoints {
			s.publishCreditPending(ctx, b, stepErr.Err)
			return nil, domain.NewCommitError(
				fmt.Sprintf("booking %s recorded but points were not credited", b.ID()),
				fmt.Errorf("%w: %v", ErrLoyaltyCreditPending, stepErr.Err),
			)
		}
		return nil, domain.NewCommitError("could not record the purchase, please try again", err)
	}

	req.User.ApplyBooking(b)

	s.logger.Info("booking committed",
		zap.String("booking_id", b.ID().String()),
		zap.String("user_id", b.UserID().String()),
		zap.Float64("total", b.Total()),
		zap.Int64("points_earned", b.PointsEarned()),
	)
	return b, nil
}

// publishConfirmed is best effort; the booking is durable already.
func (s *BookingSagaService) publishConfirmed(ctx context.Context, b *booking.Booking) {
	event := events.BookingConfirmedEvent{
		BookingID:    b.ID(),
		UserID:       b.UserID(),
		MovieID:      b.MovieID(),
		ShowtimeID:   b.ShowtimeID(),
		Seats:        b.Seats(),
		Total:        b.Total(),
		PointsEarned: b.PointsEarned(),
		OccurredAt:   time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.TopicBookingEvents, events.BookingConfirmed, b.ID().String(), event); err != nil {
		s.logger.Error("failed to publish booking confirmed event",
			zap.String("booking_id", b.ID().String()),
			zap.Error(err),
		)
	}
}

func (s *BookingSagaService) publishCreditPending(ctx context.Context, b *booking.Booking, cause error) {
	event := events.CreditPendingEvent{
		BookingID:  b.ID(),
		UserID:     b.UserID(),
		Points:     b.PointsEarned(),
		Reason:     cause.Error(),
		OccurredAt: time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.TopicBookingEvents, events.BookingCreditPending, b.ID().String(), event); err != nil {
		s.logger.Warn("failed to publish credit pending event, reconciler sweep will pick it up",
			zap.String("booking_id", b.ID().String()),
			zap.Error(err),
		)
	}
}
