package events

import (
	"context"
	"strings"

	"github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/cinemax-hub/service-checkout/internal/common/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreditRetrier finishes a pending loyalty credit.
type CreditRetrier interface {
	RetryCredit(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

// creditPendingHandler decodes booking events from either broker and retries
// the credit of every booking.credit_pending it sees.
type creditPendingHandler struct {
	credits CreditRetrier
	logger  *zap.Logger
}

func (h *creditPendingHandler) handle(ctx context.Context, raw []byte) error {
	cloudEvent, err := kafka.ParseCloudEvent(raw)
	if err != nil {
		h.logger.Error("failed to parse cloud event from booking events",
			zap.Error(err),
			zap.String("raw", string(raw)),
		)
		return err
	}

	if !strings.EqualFold(cloudEvent.Type, events.BookingCreditPending) {
		h.logger.Debug("ignoring unhandled booking event type", zap.String("type", cloudEvent.Type))
		return nil
	}

	var event events.CreditPendingEvent
	if err := cloudEvent.ParseData(&event); err != nil {
		h.logger.Error("failed to parse CreditPendingEvent data", zap.Error(err))
		return err
	}

	h.logger.Info("received credit pending event",
		zap.String("booking_id", event.BookingID.String()),
		zap.String("reason", event.Reason),
	)

	// A failure here is left to the scheduled sweep.
	if _, err := h.credits.RetryCredit(ctx, event.BookingID); err != nil {
		h.logger.Warn("credit retry from event failed",
			zap.String("booking_id", event.BookingID.String()),
			zap.Error(err),
		)
	}
	return nil
}
