package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	profileDomain "github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileModel is the GORM persistence model for the profiles table.
type ProfileModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone         string    `gorm:"type:varchar(50)"`
	Birthday      string    `gorm:"type:varchar(20)"`
	Avatar        string    `gorm:"type:varchar(512)"`
	LoyaltyPoints int64     `gorm:"not null;default:0"`
	MemberSince   time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt     time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ProfileRepositoryImpl is the GORM-based implementation of ProfileRepository.
type ProfileRepositoryImpl struct {
	db *gorm.DB
}

// NewProfileRepository creates a new GORM-based profile repository.
func NewProfileRepository(db *gorm.DB) *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{db: db}
}

// FindByID retrieves a profile by user ID.
func (r *ProfileRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Profile", id.String())
		}
		return nil, err
	}
	return toProfileDomain(&model), nil
}

// incrementLoyaltyPoints adds delta to the stored balance in a single statement.
func incrementLoyaltyPoints(db *gorm.DB, id uuid.UUID, delta int64) error {
	result := db.Model(&ProfileModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"loyalty_points": gorm.Expr("loyalty_points + ?", delta),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Profile", id.String())
	}
	return nil
}

func toProfileDomain(m *ProfileModel) *profileDomain.Profile {
	return profileDomain.Reconstitute(
		m.ID, m.Name, m.Email, m.Phone, m.Birthday, m.Avatar,
		m.LoyaltyPoints, m.MemberSince,
	)
}

func toProfileModel(p *profileDomain.Profile) *ProfileModel {
	return &ProfileModel{
		ID:            p.ID(),
		Name:          p.Name(),
		Email:         p.Email(),
		Phone:         p.Phone(),
		Birthday:      p.Birthday(),
		Avatar:        p.Avatar(),
		LoyaltyPoints: p.LoyaltyPoints(),
		MemberSince:   p.MemberSince(),
		UpdatedAt:     p.MemberSince(),
	}
}
