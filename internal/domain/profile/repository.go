package profile

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository reads user profiles. Balances change only through booking.LoyaltyLedger.
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
}
