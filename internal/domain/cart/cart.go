package cart

import (
	"github.com/cinemax-hub/service-checkout/internal/domain/catalog"
)

// Line is one concession entry. (Item.ID, Size) is unique within a cart.
type Line struct {
	Item     catalog.Concession `json:"item"`
	Quantity int                `json:"quantity"`
	Size     Size               `json:"size,omitempty"`
}

// Total is basePrice * sizeMultiplier * quantity.
func (l Line) Total() float64 {
	return l.Item.Price * l.Size.Multiplier() * float64(l.Quantity)
}

// Cart is an ordered list of concession lines.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add increments the (item, size) line or appends a new one with quantity 1.
func (c *Cart) Add(item catalog.Concession, size Size) {
	for i := range c.Lines {
		if c.Lines[i].Item.ID == item.ID && c.Lines[i].Size == size {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Item: item, Quantity: 1, Size: size})
}

// Remove deletes every line for itemID regardless of size.
func (c *Cart) Remove(itemID string) {
	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if l.Item.ID != itemID {
			kept = append(kept, l)
		}
	}
	c.Lines = kept
}

// UpdateQuantity sets quantity on every line for itemID. Zero is stored as-is.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].Item.ID == itemID {
			c.Lines[i].Quantity = quantity
		}
	}
}

// Total sums every line.
func (c Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Total()
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Lines = nil
}
