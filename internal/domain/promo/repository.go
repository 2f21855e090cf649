package promo

import (
	"context"
)

// PromoRepository defines persistence operations for promo codes.
type PromoRepository interface {
	Save(ctx context.Context, p *PromoCode) error
	FindByCode(ctx context.Context, code string) (*PromoCode, error)
	FindAll(ctx context.Context) ([]*PromoCode, error)
	Count(ctx context.Context) (int64, error)
}
