package booking

import (
	"errors"
	"testing"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/cart"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/seat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	movie    = catalog.Movie{ID: "m1", Title: "Duna"}
	showtime = catalog.Showtime{ID: "st1", MovieID: "m1", Date: "2025-11-14", Time: "19:30", Screen: "Sala 1"}
)

func TestNewBooking_Snapshot(t *testing.T) {
	var c cart.Cart
	c.Add(catalog.Concession{ID: "s1", Name: "Pipoca", Price: 6.5}, cart.SizeLarge)
	seats := []seat.Seat{
		{ID: "E5", Status: seat.StatusSelected, Price: 18},
		{ID: "E6", Status: seat.StatusSelected, Price: 18},
	}

	b, err := NewBooking(uuid.New(), movie, showtime, seats, c, 41.6, "FIMDESEMANA20")
	require.NoError(t, err)

	assert.Equal(t, []string{"E5", "E6"}, b.Seats())
	assert.Equal(t, "2025-11-14 at 19:30", b.Showtime())
	assert.Equal(t, "2025-11-14 at 19:30 - Sala 1", b.ShowtimeLabel())
	assert.Equal(t, int64(41), b.PointsEarned())
	assert.Equal(t, StatusConfirmed, b.Status())
	assert.Equal(t, CreditPending, b.CreditStatus())
	require.Len(t, b.Snacks(), 1)
	assert.Equal(t, "Large", b.Snacks()[0].Size)
}

func TestNewBooking_Preconditions(t *testing.T) {
	_, err := NewBooking(uuid.Nil, movie, showtime, nil, cart.Cart{}, 10, "")
	assert.True(t, errors.Is(err, domain.ErrPrecondition))

	_, err = NewBooking(uuid.New(), catalog.Movie{}, showtime, nil, cart.Cart{}, 10, "")
	assert.True(t, errors.Is(err, domain.ErrPrecondition))

	_, err = NewBooking(uuid.New(), movie, catalog.Showtime{}, nil, cart.Cart{}, 10, "")
	assert.True(t, errors.Is(err, domain.ErrPrecondition))
}

func TestNewBooking_RejectsOccupiedSeat(t *testing.T) {
	seats := []seat.Seat{{ID: "A1", Status: seat.StatusOccupied, Price: 12}}
	_, err := NewBooking(uuid.New(), movie, showtime, seats, cart.Cart{}, 12, "")
	assert.True(t, errors.Is(err, domain.ErrPrecondition))
}

func TestNewBooking_ConcessionsOnly(t *testing.T) {
	var c cart.Cart
	c.Add(catalog.Concession{ID: "s10", Price: 3}, cart.SizeNone)
	b, err := NewBooking(uuid.New(), movie, showtime, nil, c, 3, "")
	require.NoError(t, err)
	assert.Empty(t, b.Seats())
	assert.Equal(t, int64(3), b.PointsEarned())
}

func TestBooking_CancelAndCredit(t *testing.T) {
	b, err := NewBooking(uuid.New(), movie, showtime, nil, cart.Cart{}, 12, "")
	require.NoError(t, err)

	require.NoError(t, b.MarkCredited())
	assert.NotNil(t, b.CreditedAt())
	assert.ErrorIs(t, b.MarkCredited(), domain.ErrInvalidState)

	require.NoError(t, b.Cancel())
	assert.Equal(t, StatusCancelled, b.Status())
	assert.ErrorIs(t, b.Cancel(), domain.ErrInvalidState)
	assert.Equal(t, 12.0, b.Total())
}
