package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	promoDomain "github.com/cinemax-hub/service-checkout/internal/domain/promo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoModel is the GORM model for the promos table.
type PromoModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code            string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Description     string    `gorm:"type:text"`
	DiscountPercent float64   `gorm:"type:double precision;not null"`
	MinPurchase     float64   `gorm:"type:double precision;default:0"`
	ValidFrom       time.Time `gorm:"not null"`
	ValidUntil      time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (PromoModel) TableName() string { return "promos" }

// GormPromoRepository implements PromoRepository using GORM.
type GormPromoRepository struct {
	db *gorm.DB
}

// NewGormPromoRepository creates a new GormPromoRepository.
func NewGormPromoRepository(db *gorm.DB) *GormPromoRepository {
	return &GormPromoRepository{db: db}
}

// Save persists a new promo code.
func (r *GormPromoRepository) Save(ctx context.Context, p *promoDomain.PromoCode) error {
	model := toPromoModel(p)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("promo code already exists: " + p.Code())
		}
		return err
	}
	return nil
}

// FindByCode returns a promo code by its normalized code string.
func (r *GormPromoRepository) FindByCode(ctx context.Context, code string) (*promoDomain.PromoCode, error) {
	var model PromoModel
	if err := r.db.WithContext(ctx).Where("code = ?", promoDomain.NormalizeCode(code)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("PromoCode", code)
		}
		return nil, err
	}
	return toPromoDomain(&model), nil
}

// FindAll returns every promo code ordered by code.
func (r *GormPromoRepository) FindAll(ctx context.Context) ([]*promoDomain.PromoCode, error) {
	var models []PromoModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	promos := make([]*promoDomain.PromoCode, len(models))
	for i := range models {
		promos[i] = toPromoDomain(&models[i])
	}
	return promos, nil
}

// Count returns the number of stored promo codes.
func (r *GormPromoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PromoModel{}).Count(&count).Error
	return count, err
}

func toPromoModel(p *promoDomain.PromoCode) PromoModel {
	return PromoModel{
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

func toPromoDomain(m *PromoModel) *promoDomain.PromoCode {
	return promoDomain.Reconstruct(
		m.ID, m.Code, m.Title, m.Description,
		m.DiscountPercent, m.MinPurchase,
		m.ValidFrom, m.ValidUntil, m.CreatedAt,
	)
}
