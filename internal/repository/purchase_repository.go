package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	bookingDomain "github.com/cinemax-hub/service-checkout/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseModel is the GORM persistence model for the purchases table.
type PurchaseModel struct {
	ID            uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	MovieID       string                    `gorm:"type:varchar(64);not null"`
	MovieTitle    string                    `gorm:"type:varchar(255);not null"`
	ShowtimeID    string                    `gorm:"type:varchar(64);not null"`
	Showtime      string                    `gorm:"type:varchar(64);not null"`
	ShowtimeLabel string                    `gorm:"type:varchar(255)"`
	Seats         []string                  `gorm:"type:jsonb;serializer:json;not null"`
	Snacks        []bookingDomain.SnackLine `gorm:"type:jsonb;serializer:json;not null"`
	Total         float64                   `gorm:"type:double precision;not null"`
	PointsEarned  int64                     `gorm:"not null"`
	PromoCode     string                    `gorm:"type:varchar(50)"`
	Status        string                    `gorm:"type:varchar(20);not null;default:'confirmed'"`
	CreditStatus  string                    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreditedAt    *time.Time                `gorm:"type:timestamptz"`
	CreatedAt     time.Time                 `gorm:"type:timestamptz;not null;default:now();index"`
	UpdatedAt     time.Time                 `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (PurchaseModel) TableName() string {
	return "purchases"
}

// PurchaseRepositoryImpl is the GORM-based implementation of PurchaseRepository and LoyaltyLedger.
type PurchaseRepositoryImpl struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new GORM-based purchase repository.
func NewPurchaseRepository(db *gorm.DB) *PurchaseRepositoryImpl {
	return &PurchaseRepositoryImpl{db: db}
}

// Append inserts a purchase record.
func (r *PurchaseRepositoryImpl) Append(ctx context.Context, b *bookingDomain.Booking) error {
	model := toPurchaseModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("purchase already recorded")
		}
		return err
	}
	return nil
}

// CreditPoints flips the purchase to credited and increments the owner's balance in one transaction.
func (r *PurchaseRepositoryImpl) CreditPoints(ctx context.Context, bookingID, userID uuid.UUID, points int64) (bool, error) {
	credited := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		result := tx.Model(&PurchaseModel{}).
			Where("id = ? AND credit_status = ?", bookingID, string(bookingDomain.CreditPending)).
			Updates(map[string]interface{}{
				"credit_status": string(bookingDomain.CreditCredited),
				"credited_at":   now,
				"updated_at":    now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := incrementLoyaltyPoints(tx, userID, points); err != nil {
			return err
		}
		credited = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return credited, nil
}

// FindByID retrieves a purchase by its unique ID.
func (r *PurchaseRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model PurchaseModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, err
	}
	return toBookingDomain(&model), nil
}

// FindByUser lists a user's purchases, newest first.
func (r *PurchaseRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toBookingDomains(models), nil
}

// FindPendingCredits lists purchases still awaiting their loyalty credit, oldest first.
func (r *PurchaseRepositoryImpl) FindPendingCredits(ctx context.Context, cutoff time.Time, limit int) ([]*bookingDomain.Booking, error) {
	var models []PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("credit_status = ? AND created_at <= ?", string(bookingDomain.CreditPending), cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toBookingDomains(models), nil
}

// UpdateStatus persists a status change. Totals and seats are never rewritten.
func (r *PurchaseRepositoryImpl) UpdateStatus(ctx context.Context, b *bookingDomain.Booking) error {
	result := r.db.WithContext(ctx).
		Model(&PurchaseModel{}).
		Where("id = ?", b.ID()).
		Updates(map[string]interface{}{
			"status":     string(b.Status()),
			"updated_at": b.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", b.ID().String())
	}
	return nil
}

// ListAll retrieves all purchases with pagination (admin).
func (r *PurchaseRepositoryImpl) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PurchaseModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []PurchaseModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return toBookingDomains(models), total, nil
}

// GetStats returns revenue from confirmed purchases and counts by status (admin).
func (r *PurchaseRepositoryImpl) GetStats(ctx context.Context) (*bookingDomain.Stats, error) {
	stats := &bookingDomain.Stats{
		ByStatus:       make(map[string]int64),
		ByCreditStatus: make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).Model(&PurchaseModel{}).
		Where("status = ?", string(bookingDomain.StatusConfirmed)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}

	var byStatus []statusCount
	if err := r.db.WithContext(ctx).Model(&PurchaseModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, sc := range byStatus {
		stats.ByStatus[sc.Status] = sc.Count
		stats.Count += sc.Count
	}

	var byCredit []statusCount
	if err := r.db.WithContext(ctx).Model(&PurchaseModel{}).
		Select("credit_status as status, count(*) as count").
		Group("credit_status").
		Find(&byCredit).Error; err != nil {
		return nil, err
	}
	for _, sc := range byCredit {
		stats.ByCreditStatus[sc.Status] = sc.Count
	}
	return stats, nil
}

func toBookingDomains(models []PurchaseModel) []*bookingDomain.Booking {
	out := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		out[i] = toBookingDomain(&models[i])
	}
	return out
}

// toBookingDomain maps a PurchaseModel to the domain Booking aggregate.
func toBookingDomain(m *PurchaseModel) *bookingDomain.Booking {
	return bookingDomain.Reconstitute(
		m.ID,
		m.UserID,
		m.MovieID,
		m.MovieTitle,
		m.ShowtimeID,
		m.Showtime,
		m.ShowtimeLabel,
		m.Seats,
		m.Snacks,
		m.Total,
		m.PointsEarned,
		m.PromoCode,
		bookingDomain.Status(m.Status),
		bookingDomain.CreditStatus(m.CreditStatus),
		m.CreditedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toPurchaseModel maps a domain Booking to a PurchaseModel for persistence.
func toPurchaseModel(b *bookingDomain.Booking) *PurchaseModel {
	seats := b.Seats()
	if seats == nil {
		seats = []string{}
	}
	snacks := b.Snacks()
	if snacks == nil {
		snacks = []bookingDomain.SnackLine{}
	}
	return &PurchaseModel{
		ID:            b.ID(),
		UserID:        b.UserID(),
		MovieID:       b.MovieID(),
		MovieTitle:    b.MovieTitle(),
		ShowtimeID:    b.ShowtimeID(),
		Showtime:      b.Showtime(),
		ShowtimeLabel: b.ShowtimeLabel(),
		Seats:         seats,
		Snacks:        snacks,
		Total:         b.Total(),
		PointsEarned:  b.PointsEarned(),
		PromoCode:     b.PromoCode(),
		Status:        string(b.Status()),
		CreditStatus:  string(b.CreditStatus()),
		CreditedAt:    b.CreditedAt(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}
