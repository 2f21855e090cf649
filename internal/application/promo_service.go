package application

import (
	"context"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	promoDomain "github.com/cinemax-hub/service-checkout/internal/domain/promo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePromoRequest holds data to create a promo code.
type CreatePromoRequest struct {
	Code            string  `json:"code" binding:"required"`
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	DiscountPercent float64 `json:"discount_percent" binding:"required,gt=0,lte=100"`
	MinPurchase     float64 `json:"min_purchase" binding:"gte=0"`
	ValidFrom       string  `json:"valid_from" binding:"required"`
	ValidUntil      string  `json:"valid_until" binding:"required"`
}

// PromoDTO is the API response representation of a promo code.
type PromoDTO struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DiscountPercent float64   `json:"discount_percent"`
	MinPurchase     float64   `json:"min_purchase"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	CreatedAt       time.Time `json:"created_at"`
}

// PromoService handles promo code use cases.
type PromoService struct {
	repo   promoDomain.PromoRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewPromoService creates a new PromoService.
func NewPromoService(repo promoDomain.PromoRepository, logger *zap.Logger) *PromoService {
	return &PromoService{repo: repo, now: time.Now, logger: logger}
}

// SeedIfEmpty stores the launch promotions on a fresh database.
func (s *PromoService) SeedIfEmpty(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, p := range promoDomain.Seed(s.now()) {
		if err := s.repo.Save(ctx, p); err != nil {
			return err
		}
	}
	s.logger.Info("promo codes seeded")
	return nil
}

// CreatePromo creates a new promo code (admin only).
func (s *PromoService) CreatePromo(ctx context.Context, req CreatePromoRequest) (*PromoDTO, error) {
	validFrom, err := time.Parse(time.RFC3339, req.ValidFrom)
	if err != nil {
		return nil, domain.NewValidationError("invalid valid_from format (use RFC3339)")
	}
	validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		return nil, domain.NewValidationError("invalid valid_until format (use RFC3339)")
	}

	p, err := promoDomain.NewPromoCode(req.Code, req.Title, req.Description, req.DiscountPercent, req.MinPurchase, validFrom, validUntil)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByCode(ctx, p.Code()); err == nil {
		return nil, domain.NewConflictError("promo code already exists: " + p.Code())
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("promo code created", zap.String("code", p.Code()))
	return toPromoDTO(p), nil
}

// Catalog loads every promo into a lookup catalog.
func (s *PromoService) Catalog(ctx context.Context) (*promoDomain.Catalog, error) {
	promos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return promoDomain.NewCatalog(promos), nil
}

// ApplyCode validates code against the catalog. An unknown code is a ValidationError.
func (s *PromoService) ApplyCode(ctx context.Context, code string) (*promoDomain.PromoCode, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return promoDomain.ApplyCode(code, cat)
}

// GetActivePromos returns promos whose validity window contains now.
func (s *PromoService) GetActivePromos(ctx context.Context) ([]*PromoDTO, error) {
	promos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dtos := make([]*PromoDTO, 0, len(promos))
	for _, p := range promos {
		if p.IsActiveAt(now) {
			dtos = append(dtos, toPromoDTO(p))
		}
	}
	return dtos, nil
}

// ListPromos returns every promo (admin).
func (s *PromoService) ListPromos(ctx context.Context) ([]*PromoDTO, error) {
	promos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*PromoDTO, len(promos))
	for i, p := range promos {
		dtos[i] = toPromoDTO(p)
	}
	return dtos, nil
}

func toPromoDTO(p *promoDomain.PromoCode) *PromoDTO {
	return &PromoDTO{
		ID:              p.ID(),
		Code:            p.Code(),
		Title:           p.Title(),
		Description:     p.Description(),
		DiscountPercent: p.DiscountPercent(),
		MinPurchase:     p.MinPurchase(),
		ValidFrom:       p.ValidFrom(),
		ValidUntil:      p.ValidUntil(),
		CreatedAt:       p.CreatedAt(),
	}
}
