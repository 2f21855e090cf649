package application

import (
	"context"
	"testing"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/promo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPromoService_SeedIfEmpty(t *testing.T) {
	store := newMemStore()
	store.promos = nil
	svc := NewPromoService(memPromos{store}, zap.NewNop())

	require.NoError(t, svc.SeedIfEmpty(context.Background()))
	require.NoError(t, svc.SeedIfEmpty(context.Background()))

	all, err := svc.ListPromos(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestPromoService_ApplyCode(t *testing.T) {
	svc := NewPromoService(memPromos{newMemStore()}, zap.NewNop())

	p, err := svc.ApplyCode(context.Background(), " familia4 ")
	require.NoError(t, err)
	assert.Equal(t, "FAMILIA4", p.Code())
	assert.Equal(t, 48.0, p.MinPurchase())

	_, err = svc.ApplyCode(context.Background(), "FAKE10")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, promo.ErrInvalidCode)
}

func TestPromoService_ActiveWindow(t *testing.T) {
	launch := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	store := newMemStore()
	store.promos = nil
	svc := NewPromoService(memPromos{store}, zap.NewNop())
	svc.now = func() time.Time { return launch }
	require.NoError(t, svc.SeedIfEmpty(context.Background()))

	codes := func() []string {
		active, err := svc.GetActivePromos(context.Background())
		require.NoError(t, err)
		out := make([]string, 0, len(active))
		for _, p := range active {
			out = append(out, p.Code)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"FIMDESEMANA20", "FAMILIA4", "ESTUDANTE15", "MATINE25"}, codes())

	svc.now = func() time.Time { return launch.AddDate(0, 6, 0) }
	assert.ElementsMatch(t, []string{"FIMDESEMANA20", "ESTUDANTE15"}, codes())

	svc.now = func() time.Time { return launch.AddDate(1, 1, 0) }
	assert.Empty(t, codes())

	_, err := svc.ApplyCode(context.Background(), "familia4")
	assert.NoError(t, err)
}

func TestPromoService_CreatePromo(t *testing.T) {
	svc := NewPromoService(memPromos{newMemStore()}, zap.NewNop())

	dto, err := svc.CreatePromo(context.Background(), CreatePromoRequest{
		Code: "natal10", Title: "Natal", DiscountPercent: 10,
		ValidFrom: "2025-12-01T00:00:00Z", ValidUntil: "2025-12-31T23:59:59Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "NATAL10", dto.Code)

	_, err = svc.CreatePromo(context.Background(), CreatePromoRequest{
		Code: "NATAL10", Title: "Natal", DiscountPercent: 10,
		ValidFrom: "2025-12-01T00:00:00Z", ValidUntil: "2025-12-31T23:59:59Z",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.CreatePromo(context.Background(), CreatePromoRequest{
		Code: "X", Title: "X", DiscountPercent: 10, ValidFrom: "yesterday", ValidUntil: "2025-12-31T23:59:59Z",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
