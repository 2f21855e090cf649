package adapter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cinemax-hub/service-checkout/internal/domain/booking"
	"github.com/cinemax-hub/service-checkout/internal/domain/cart"
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
	"github.com/cinemax-hub/service-checkout/internal/domain/seat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRTicketRenderer_RendersPNG(t *testing.T) {
	b, err := booking.NewBooking(uuid.New(),
		catalog.Movie{ID: "m1", Title: "Duna"},
		catalog.Showtime{ID: "st1", Date: "2025-11-14", Time: "19:30", Screen: "Sala 1"},
		[]seat.Seat{{ID: "E5", Status: seat.StatusSelected, Price: 18}, {ID: "E6", Status: seat.StatusSelected, Price: 18}},
		cart.Cart{}, 36, "")
	require.NoError(t, err)

	payload := TicketPayload(b)
	assert.True(t, strings.HasPrefix(payload, "CINEMAX|"+b.ID().String()))
	assert.True(t, strings.HasSuffix(payload, "|E5,E6"))

	img, err := NewQRTicketRenderer(128).Render(b)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
}
