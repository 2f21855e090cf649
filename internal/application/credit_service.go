package application

import (
	"context"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/cinemax-hub/service-checkout/internal/domain/booking"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconcileResultDTO summarises one reconciliation pass.
type ReconcileResultDTO struct {
	Scanned  int `json:"scanned"`
	Credited int `json:"credited"`
	Failed   int `json:"failed"`
}

// CreditService completes loyalty credits left pending by a failed second write.
type CreditService struct {
	purchases booking.PurchaseRepository
	ledger    booking.LoyaltyLedger
	publisher events.Publisher
	batchSize int
	logger    *zap.Logger
}

// NewCreditService creates a new CreditService.
func NewCreditService(
	purchases booking.PurchaseRepository,
	ledger booking.LoyaltyLedger,
	publisher events.Publisher,
	logger *zap.Logger,
) *CreditService {
	return &CreditService{
		purchases: purchases,
		ledger:    ledger,
		publisher: publisher,
		batchSize: 100,
		logger:    logger,
	}
}

// RetryCredit applies the pending credit of one purchase. It returns false when
// there was nothing left to credit.
func (s *CreditService) RetryCredit(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	b, err := s.purchases.FindByID(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if b.CreditStatus() == booking.CreditCredited {
		return false, nil
	}

	credited, err := s.ledger.CreditPoints(ctx, b.ID(), b.UserID(), b.PointsEarned())
	if err != nil {
		s.logger.Warn("loyalty credit retry failed",
			zap.String("booking_id", b.ID().String()),
			zap.Error(err),
		)
		return false, err
	}
	if !credited {
		return false, nil
	}

	s.logger.Info("pending loyalty credit applied",
		zap.String("booking_id", b.ID().String()),
		zap.String("user_id", b.UserID().String()),
		zap.Int64("points", b.PointsEarned()),
	)

	event := events.BookingCreditedEvent{
		BookingID:  b.ID(),
		UserID:     b.UserID(),
		Points:     b.PointsEarned(),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.TopicBookingEvents, events.BookingCredited, b.ID().String(), event); err != nil {
		s.logger.Error("failed to publish booking credited event", zap.Error(err))
	}
	return true, nil
}

// ReconcilePending retries every pending credit older than minAge.
func (s *CreditService) ReconcilePending(ctx context.Context, minAge time.Duration) (*ReconcileResultDTO, error) {
	cutoff := time.Now().UTC().Add(-minAge)
	pending, err := s.purchases.FindPendingCredits(ctx, cutoff, s.batchSize)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResultDTO{Scanned: len(pending)}
	for _, b := range pending {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		credited, err := s.RetryCredit(ctx, b.ID())
		switch {
		case err != nil:
			result.Failed++
		case credited:
			result.Credited++
		}
	}

	if result.Scanned > 0 {
		s.logger.Info("loyalty credit reconciliation finished",
			zap.Int("scanned", result.Scanned),
			zap.Int("credited", result.Credited),
			zap.Int("failed", result.Failed),
		)
	}
	return result, nil
}
