package pricing

import (
	"testing"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/domain/cart"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/promo"
	"github.com/cinemax-hub/service-checkout/internal/domain/seat"
	"github.com/stretchr/testify/assert"
)

func mustPromo(t *testing.T, code string, pct, min float64) *promo.PromoCode {
	t.Helper()
	now := time.Now()
	p, err := promo.NewPromoCode(code, "", "", pct, min, now, now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func seatsWithPrices(prices ...float64) []seat.Seat {
	out := make([]seat.Seat, len(prices))
	for i, p := range prices {
		out[i] = seat.Seat{Price: p, Status: seat.StatusSelected}
	}
	return out
}

func TestComputeTotal_SeatsOnly(t *testing.T) {
	q := ComputeTotal(seatsWithPrices(12, 18), cart.Cart{}, "", nil)

	assert.Equal(t, 30.0, q.SeatsTotal)
	assert.Equal(t, 0.0, q.SnacksTotal)
	assert.Equal(t, 30.0, q.Total)
	assert.Equal(t, int64(30), q.PointsEarned)
	assert.False(t, q.PromoApplied)
}

func TestComputeTotal_PromoApplied(t *testing.T) {
	cat := promo.NewCatalog([]*promo.PromoCode{mustPromo(t, "TWENTY", 20, 0)})

	q := ComputeTotal(seatsWithPrices(12, 18, 20), cart.Cart{}, "twenty", cat)

	assert.Equal(t, 50.0, q.Subtotal)
	assert.InDelta(t, 40.0, q.Total, 1e-9)
	assert.InDelta(t, 10.0, q.Discount, 1e-9)
	assert.True(t, q.PromoApplied)
	assert.Equal(t, int64(40), q.PointsEarned)
}

func TestComputeTotal_PromoBelowMinimum(t *testing.T) {
	cat := promo.NewCatalog([]*promo.PromoCode{mustPromo(t, "FAMILIA4", 15, 48)})

	q := ComputeTotal(seatsWithPrices(22, 18), cart.Cart{}, "FAMILIA4", cat)

	assert.Equal(t, 40.0, q.Subtotal)
	assert.Equal(t, q.Subtotal, q.Total)
	assert.False(t, q.PromoApplied)
	assert.Equal(t, 0.0, q.Discount)
	assert.Equal(t, "FAMILIA4", q.PromoCode)
}

func TestComputeTotal_UnknownCodeIgnored(t *testing.T) {
	cat := promo.NewCatalog(promo.Seed(time.Now()))
	q := ComputeTotal(seatsWithPrices(12), cart.Cart{}, "BOGUS", cat)
	assert.Equal(t, 12.0, q.Total)
	assert.Empty(t, q.PromoCode)
}

func TestComputeTotal_ReapplyingSameCodeIsIdempotent(t *testing.T) {
	cat := promo.NewCatalog(promo.Seed(time.Now()))
	seats := seatsWithPrices(12, 18)

	once := ComputeTotal(seats, cart.Cart{}, "FIMDESEMANA20", cat)
	twice := ComputeTotal(seats, cart.Cart{}, promo.NormalizeCode(once.PromoCode), cat)

	assert.Equal(t, once, twice)
}

func TestComputeTotal_WithCartAndFloorPoints(t *testing.T) {
	var c cart.Cart
	c.Add(catalog.Concession{ID: "s1", Price: 6.50}, cart.SizeMedium)
	c.Add(catalog.Concession{ID: "s1", Price: 6.50}, cart.SizeMedium)

	q := ComputeTotal(seatsWithPrices(12), c, "", nil)

	assert.InDelta(t, 19.50, q.SnacksTotal, 1e-9)
	assert.InDelta(t, 31.50, q.Total, 1e-9)
	assert.Equal(t, int64(31), q.PointsEarned)
}

func TestPointsFor(t *testing.T) {
	assert.Equal(t, int64(0), PointsFor(0))
	assert.Equal(t, int64(0), PointsFor(0.99))
	assert.Equal(t, int64(40), PointsFor(40.8))
	assert.Equal(t, int64(25), PointsFor(25.5))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "19.50", FormatAmount(19.5))
	assert.Equal(t, "40.80", FormatAmount(48*0.85))
}
