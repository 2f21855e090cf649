package pricing

import (
	"fmt"
	"math"

	"github.com/cinemax-hub/service-checkout/internal/domain/cart"
	"github.com/cinemax-hub/service-checkout/internal/domain/promo"
	"github.com/cinemax-hub/service-checkout/internal/domain/seat"
)

// Quote is the price breakdown of a checkout. Values keep full float precision.
type Quote struct {
	SeatsTotal      float64 `json:"seats_total"`
	SnacksTotal     float64 `json:"snacks_total"`
	Subtotal        float64 `json:"subtotal"`
	PromoCode       string  `json:"promo_code,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	PromoApplied    bool    `json:"promo_applied"`
	Discount        float64 `json:"discount"`
	Total           float64 `json:"total"`
	PointsEarned    int64   `json:"points_earned"`
}

// ComputeTotal prices selected seats plus cart and applies at most one promo.
// An unknown code or an unmet minimum leaves total equal to subtotal.
func ComputeTotal(seats []seat.Seat, c cart.Cart, appliedCode string, catalog *promo.Catalog) Quote {
	q := Quote{
		SeatsTotal:  seat.Subtotal(seats),
		SnacksTotal: c.Total(),
	}
	q.Subtotal = q.SeatsTotal + q.SnacksTotal
	q.Total = q.Subtotal

	if appliedCode != "" {
		if p, ok := catalog.Lookup(appliedCode); ok {
			q.PromoCode = p.Code()
			q.DiscountPercent = p.DiscountPercent()
			if p.Eligible(q.Subtotal) {
				q.Total = p.Apply(q.Subtotal)
				q.PromoApplied = true
				q.Discount = q.Subtotal * p.DiscountPercent() / 100
			}
		}
	}

	q.PointsEarned = PointsFor(q.Total)
	return q
}

// PointsFor awards one loyalty point per whole currency unit.
func PointsFor(total float64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Floor(total))
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
