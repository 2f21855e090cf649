package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PurchaseRepository is the global, append-only purchase log.
type PurchaseRepository interface {
	// Append inserts a new purchase record. It never updates an existing row.
	Append(ctx context.Context, b *Booking) error

	// FindByID retrieves a purchase by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByUser lists a user's purchases, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)

	// FindPendingCredits lists purchases whose loyalty credit is still pending and were created before cutoff.
	FindPendingCredits(ctx context.Context, cutoff time.Time, limit int) ([]*Booking, error)

	// UpdateStatus persists a status change (cancellation).
	UpdateStatus(ctx context.Context, b *Booking) error

	// ListAll retrieves all purchases with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// GetStats returns revenue and counts by status and credit status (admin).
	GetStats(ctx context.Context) (*Stats, error)
}

// LoyaltyLedger applies loyalty credit for a purchase.
type LoyaltyLedger interface {
	// CreditPoints atomically flips the purchase from pending to credited and adds
	// points to the owner's balance. It returns false when the purchase was already credited.
	CreditPoints(ctx context.Context, bookingID, userID uuid.UUID, points int64) (bool, error)
}

// Stats summarises the purchase log.
type Stats struct {
	Revenue        float64
	Count          int64
	ByStatus       map[string]int64
	ByCreditStatus map[string]int64
}
