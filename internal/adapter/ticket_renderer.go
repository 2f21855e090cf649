package adapter

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/cinemax-hub/service-checkout/internal/domain/booking"
	"github.com/skip2/go-qrcode"
)

// TicketRenderer turns a booking into a scannable ticket image.
type TicketRenderer interface {
	Render(b *booking.Booking) ([]byte, error)
}

// QRTicketRenderer renders a PNG QR code of the booking reference.
type QRTicketRenderer struct {
	size int
}

// NewQRTicketRenderer creates a renderer producing size x size images.
func NewQRTicketRenderer(size int) *QRTicketRenderer {
	if size <= 0 {
		size = 256
	}
	return &QRTicketRenderer{size: size}
}

// TicketPayload is the text encoded in the QR code.
func TicketPayload(b *booking.Booking) string {
	return fmt.Sprintf("CINEMAX|%s|%s|%s|%s",
		b.ID(), b.MovieID(), b.Showtime(), strings.Join(b.Seats(), ","))
}

// Render encodes the ticket payload as PNG.
func (r *QRTicketRenderer) Render(b *booking.Booking) ([]byte, error) {
	qr, err := qrcode.New(TicketPayload(b), qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(r.size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
