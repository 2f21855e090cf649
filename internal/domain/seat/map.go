package seat

import (
	"fmt"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
)

// DefaultOccupancy is the chance that a generated seat starts occupied.
const DefaultOccupancy = 0.25

// Layout describes the auditorium grid.
type Layout struct {
	Rows        []string `json:"rows"`
	SeatsPerRow int      `json:"seats_per_row"`
}

// DefaultLayout is ten rows A-J of fourteen seats.
func DefaultLayout() Layout {
	return Layout{
		Rows:        []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		SeatsPerRow: 14,
	}
}

// RandomSource yields floats in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// CategoryFor classifies a seat by position. rowIndex is 0-based, number is 1-based.
func CategoryFor(rowIndex, number int) Category {
	if rowIndex >= 4 && rowIndex <= 6 && number >= 5 && number <= 10 {
		return CategoryVIP
	}
	if rowIndex >= 8 {
		return CategoryDeluxe
	}
	return CategoryStandard
}

// Map is the seat grid of a single showtime view, row-major.
type Map struct {
	Layout Layout `json:"layout"`
	Seats  []Seat `json:"seats"`
}

// Generate builds a seat map. Each seat is occupied independently with probability occupancy.
func Generate(layout Layout, occupancy float64, rng RandomSource) Map {
	seats := make([]Seat, 0, len(layout.Rows)*layout.SeatsPerRow)
	for ri, row := range layout.Rows {
		for n := 1; n <= layout.SeatsPerRow; n++ {
			cat := CategoryFor(ri, n)
			status := StatusAvailable
			if rng.Float64() < occupancy {
				status = StatusOccupied
			}
			seats = append(seats, Seat{
				ID:       fmt.Sprintf("%s%d", row, n),
				Row:      row,
				Number:   n,
				Category: cat,
				Status:   status,
				Price:    PriceOf(cat),
			})
		}
	}
	return Map{Layout: layout, Seats: seats}
}

// Toggle flips the selection of the seat with the given ID.
func (m *Map) Toggle(id string) error {
	for i := range m.Seats {
		if m.Seats[i].ID == id {
			return m.Seats[i].Toggle()
		}
	}
	return &domain.DomainError{
		Err:     domain.ErrNotFound,
		Message: fmt.Sprintf("seat %s not found", id),
		Cause:   ErrSeatNotFound,
	}
}

// Selected returns the currently selected seats in grid order.
func (m Map) Selected() []Seat {
	var out []Seat
	for _, s := range m.Seats {
		if s.Status == StatusSelected {
			out = append(out, s)
		}
	}
	return out
}

// ClearSelection returns every selected seat to available.
func (m *Map) ClearSelection() {
	for i := range m.Seats {
		if m.Seats[i].Status == StatusSelected {
			m.Seats[i].Status = StatusAvailable
		}
	}
}

// Available counts seats that are not occupied.
func (m Map) Available() int {
	n := 0
	for _, s := range m.Seats {
		if s.Status != StatusOccupied {
			n++
		}
	}
	return n
}
