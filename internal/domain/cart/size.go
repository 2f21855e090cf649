package cart

import (
	"strings"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
)

// Size is the optional size tier of a concession line. The zero value means no size.
type Size string

const (
	SizeNone   Size = ""
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// Multiplier scales the base price of an item.
func (s Size) Multiplier() float64 {
	switch s {
	case SizeMedium:
		return 1.5
	case SizeLarge:
		return 2.0
	default:
		return 1.0
	}
}

// ParseSize accepts English or Portuguese tier labels in any case.
func ParseSize(raw string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return SizeNone, nil
	case "small", "pequeno":
		return SizeSmall, nil
	case "medium", "médio", "medio":
		return SizeMedium, nil
	case "large", "grande":
		return SizeLarge, nil
	}
	return SizeNone, domain.NewValidationError("unknown size: " + raw)
}
