package seat

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSource always returns the same value.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestGenerate_LayoutAndCategories(t *testing.T) {
	m := Generate(DefaultLayout(), DefaultOccupancy, constSource(0.9))

	require.Len(t, m.Seats, 140)
	assert.Equal(t, "A1", m.Seats[0].ID)
	assert.Equal(t, "J14", m.Seats[139].ID)

	byID := map[string]Seat{}
	for _, s := range m.Seats {
		byID[s.ID] = s
		assert.Equal(t, StatusAvailable, s.Status)
		assert.Equal(t, PriceOf(s.Category), s.Price)
	}

	assert.Equal(t, CategoryVIP, byID["E5"].Category)
	assert.Equal(t, CategoryVIP, byID["G10"].Category)
	assert.Equal(t, CategoryStandard, byID["E4"].Category)
	assert.Equal(t, CategoryStandard, byID["G11"].Category)
	assert.Equal(t, CategoryStandard, byID["H7"].Category)
	assert.Equal(t, CategoryDeluxe, byID["I1"].Category)
	assert.Equal(t, CategoryDeluxe, byID["J14"].Category)
	assert.Equal(t, 12.0, byID["A1"].Price)
	assert.Equal(t, 18.0, byID["F7"].Price)
	assert.Equal(t, 22.0, byID["I3"].Price)
}

func TestGenerate_CategoryCounts(t *testing.T) {
	m := Generate(DefaultLayout(), 0, constSource(0.5))
	counts := map[Category]int{}
	for _, s := range m.Seats {
		counts[s.Category]++
	}
	assert.Equal(t, 18, counts[CategoryVIP])
	assert.Equal(t, 28, counts[CategoryDeluxe])
	assert.Equal(t, 94, counts[CategoryStandard])
}

func TestGenerate_Occupancy(t *testing.T) {
	all := Generate(DefaultLayout(), DefaultOccupancy, constSource(0.1))
	assert.Equal(t, 0, all.Available())

	rng := rand.New(rand.NewPCG(1, 2))
	m := Generate(DefaultLayout(), DefaultOccupancy, rng)
	occupied := 140 - m.Available()
	assert.Greater(t, occupied, 10)
	assert.Less(t, occupied, 70)
}

func TestMap_ToggleOccupiedNeverSelects(t *testing.T) {
	m := Generate(DefaultLayout(), 1, constSource(0))

	err := m.Toggle("A1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSeatOccupied))
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Empty(t, m.Selected())
}

func TestMap_ToggleSelectsAndReleases(t *testing.T) {
	m := Generate(DefaultLayout(), 0, constSource(0.5))

	require.NoError(t, m.Toggle("E5"))
	require.NoError(t, m.Toggle("A1"))
	sel := m.Selected()
	require.Len(t, sel, 2)
	assert.Equal(t, []string{"A1", "E5"}, IDs(sel))
	assert.Equal(t, 30.0, Subtotal(sel))

	require.NoError(t, m.Toggle("E5"))
	assert.Len(t, m.Selected(), 1)

	m.ClearSelection()
	assert.Empty(t, m.Selected())
}

func TestMap_ToggleUnknownSeat(t *testing.T) {
	m := Generate(DefaultLayout(), 0, constSource(0.5))
	err := m.Toggle("Z99")
	assert.True(t, errors.Is(err, ErrSeatNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
