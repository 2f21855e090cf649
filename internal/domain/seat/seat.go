package seat

import (
	"errors"
	"fmt"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
)

// Category is the seat class; it alone determines the unit price.
type Category string

const (
	CategoryStandard Category = "Standard"
	CategoryVIP      Category = "VIP"
	CategoryDeluxe   Category = "Deluxe"
)

// Status is the seat's availability within one seat map.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSelected  Status = "selected"
	StatusOccupied  Status = "occupied"
)

var (
	ErrSeatOccupied = errors.New("seat is occupied")
	ErrSeatNotFound = errors.New("seat not found")
)

// prices is fixed; a seat's price is copied from here at generation time.
var prices = map[Category]float64{
	CategoryStandard: 12,
	CategoryVIP:      18,
	CategoryDeluxe:   22,
}

// PriceOf returns the unit price of a category.
func PriceOf(c Category) float64 {
	return prices[c]
}

// Seat is one position in the auditorium grid. ID is row letter + number, e.g. "E7".
type Seat struct {
	ID       string   `json:"id"`
	Row      string   `json:"row"`
	Number   int      `json:"number"`
	Category Category `json:"type"`
	Status   Status   `json:"status"`
	Price    float64  `json:"price"`
}

// Toggle flips available <-> selected. Occupied seats never change.
func (s *Seat) Toggle() error {
	switch s.Status {
	case StatusAvailable:
		s.Status = StatusSelected
	case StatusSelected:
		s.Status = StatusAvailable
	default:
		return &domain.DomainError{
			Err:     domain.ErrInvalidState,
			Message: fmt.Sprintf("seat %s cannot be selected", s.ID),
			Cause:   ErrSeatOccupied,
		}
	}
	return nil
}

// Subtotal sums the unit prices of seats.
func Subtotal(seats []Seat) float64 {
	var total float64
	for _, s := range seats {
		total += s.Price
	}
	return total
}

// IDs returns the seat identifiers in order.
func IDs(seats []Seat) []string {
	ids := make([]string, len(seats))
	for i, s := range seats {
		ids[i] = s.ID
	}
	return ids
}
