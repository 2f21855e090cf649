package application

import (
	"bytes"
	"context"
	"testing"

	"github.com/cinemax-hub/service-checkout/internal/adapter"
	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBookingService_HistoryTicketAndCancel(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, f.userID, f.atCheckout(t))
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, f.userID, f.atCheckout(t))
	require.NoError(t, err)

	svc := NewBookingService(memPurchases{f.store}, memProfiles{f.store}, adapter.NewQRTicketRenderer(64), f.publisher, zap.NewNop())

	prof, err := svc.GetProfile(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(160), prof.LoyaltyPoints)
	assert.Equal(t, int64(840), prof.NextTier.Remaining)
	assert.InDelta(t, 16.0, prof.NextTier.Percent, 1e-9)
	require.Len(t, prof.Bookings, 2)
	ids := []uuid.UUID{prof.Bookings[0].ID, prof.Bookings[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{first.Booking.ID, second.Booking.ID}, ids)

	png, err := svc.RenderTicket(ctx, f.userID, first.Booking.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = svc.RenderTicket(ctx, uuid.New(), first.Booking.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cancelled, err := svc.CancelBooking(ctx, f.userID, first.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, first.Booking.Total, cancelled.Total)
	assert.Contains(t, f.publisher.published(), events.BookingCancelled)

	_, err = svc.CancelBooking(ctx, f.userID, first.Booking.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = svc.RenderTicket(ctx, f.userID, first.Booking.ID)
	assert.ErrorIs(t, err, domain.ErrPrecondition)

	stats, err := svc.GetBookingStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, 30.0, stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.ByStatus["cancelled"])
}
