package promo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/google/uuid"
)

// ErrInvalidCode is returned when a code has no catalog entry.
var ErrInvalidCode = errors.New("invalid discount code")

// PromoCode is an immutable percentage discount with a minimum purchase threshold.
type PromoCode struct {
	id              uuid.UUID
	code            string
	title           string
	description     string
	discountPercent float64
	minPurchase     float64
	validFrom       time.Time
	validUntil      time.Time
	createdAt       time.Time
}

// NormalizeCode upper-cases and trims a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewPromoCode creates a new promo code.
func NewPromoCode(code, title, description string, discountPercent, minPurchase float64, validFrom, validUntil time.Time) (*PromoCode, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, domain.NewValidationError("promo code is required")
	}
	if discountPercent <= 0 || discountPercent > 100 {
		return nil, domain.NewValidationError("discount must be between 0 and 100 percent")
	}
	if minPurchase < 0 {
		return nil, domain.NewValidationError("minimum purchase cannot be negative")
	}
	if validUntil.Before(validFrom) {
		return nil, domain.NewValidationError("valid_until must be after valid_from")
	}

	return &PromoCode{
		id:              uuid.New(),
		code:            code,
		title:           title,
		description:     description,
		discountPercent: discountPercent,
		minPurchase:     minPurchase,
		validFrom:       validFrom,
		validUntil:      validUntil,
		createdAt:       time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a PromoCode from persistence.
func Reconstruct(id uuid.UUID, code, title, description string, discountPercent, minPurchase float64, validFrom, validUntil, createdAt time.Time) *PromoCode {
	return &PromoCode{
		id: id, code: code, title: title, description: description,
		discountPercent: discountPercent, minPurchase: minPurchase,
		validFrom: validFrom, validUntil: validUntil, createdAt: createdAt,
	}
}

// IsActiveAt reports whether t falls inside the validity window.
func (p *PromoCode) IsActiveAt(t time.Time) bool {
	return !t.Before(p.validFrom) && !t.After(p.validUntil)
}

// Eligible reports whether subtotal meets the minimum purchase.
func (p *PromoCode) Eligible(subtotal float64) bool {
	return subtotal >= p.minPurchase
}

// Apply returns the discounted total, or subtotal unchanged when the minimum is not met.
func (p *PromoCode) Apply(subtotal float64) float64 {
	if !p.Eligible(subtotal) {
		return subtotal
	}
	return subtotal * (1 - p.discountPercent/100)
}

// Getters.
func (p *PromoCode) ID() uuid.UUID            { return p.id }
func (p *PromoCode) Code() string             { return p.code }
func (p *PromoCode) Title() string            { return p.title }
func (p *PromoCode) Description() string      { return p.description }
func (p *PromoCode) DiscountPercent() float64 { return p.discountPercent }
func (p *PromoCode) MinPurchase() float64     { return p.minPurchase }
func (p *PromoCode) ValidFrom() time.Time     { return p.validFrom }
func (p *PromoCode) ValidUntil() time.Time    { return p.validUntil }
func (p *PromoCode) CreatedAt() time.Time     { return p.createdAt }

// Catalog is an in-memory, read-only index of promo codes.
type Catalog struct {
	byCode  map[string]*PromoCode
	ordered []*PromoCode
}

// NewCatalog indexes promos by normalized code. Later duplicates are ignored.
func NewCatalog(promos []*PromoCode) *Catalog {
	c := &Catalog{byCode: make(map[string]*PromoCode, len(promos))}
	for _, p := range promos {
		key := NormalizeCode(p.code)
		if _, dup := c.byCode[key]; dup {
			continue
		}
		c.byCode[key] = p
		c.ordered = append(c.ordered, p)
	}
	return c
}

// Lookup finds a promo by code, case-insensitively.
func (c *Catalog) Lookup(code string) (*PromoCode, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c.byCode[NormalizeCode(code)]
	return p, ok
}

// All returns the promos in insertion order.
func (c *Catalog) All() []*PromoCode {
	if c == nil {
		return nil
	}
	return c.ordered
}

// ApplyCode validates code against the catalog.
func ApplyCode(code string, c *Catalog) (*PromoCode, error) {
	p, ok := c.Lookup(code)
	if !ok {
		return nil, &domain.DomainError{
			Err:     domain.ErrValidation,
			Message: fmt.Sprintf("%s: %s", ErrInvalidCode.Error(), NormalizeCode(code)),
			Cause:   ErrInvalidCode,
		}
	}
	return p, nil
}
