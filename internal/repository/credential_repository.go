package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/identity"
	profileDomain "github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CredentialModel is the GORM persistence model for the credentials table.
type CredentialModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'customer'"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}

// CredentialRepositoryImpl is the GORM-based implementation of CredentialRepository.
type CredentialRepositoryImpl struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new GORM-based credential repository.
func NewCredentialRepository(db *gorm.DB) *CredentialRepositoryImpl {
	return &CredentialRepositoryImpl{db: db}
}

// CreateWithProfile inserts the credential and the new profile in one transaction.
func (r *CredentialRepositoryImpl) CreateWithProfile(ctx context.Context, cred identity.Credential, p *profileDomain.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := CredentialModel{
			UserID:       cred.UserID,
			Email:        strings.ToLower(cred.Email),
			PasswordHash: cred.PasswordHash,
			Role:         cred.Role,
			CreatedAt:    cred.CreatedAt,
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return tx.Create(toProfileModel(p)).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.DomainError{Err: domain.ErrConflict, Cause: identity.ErrEmailAlreadyInUse}
	}
	return err
}

// FindByEmail retrieves a credential by its lower-cased email.
func (r *CredentialRepositoryImpl) FindByEmail(ctx context.Context, email string) (*identity.Credential, error) {
	var model CredentialModel
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("email = ?", normalized).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Credential", normalized)
		}
		return nil, err
	}
	return &identity.Credential{
		UserID:       model.UserID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         model.Role,
		CreatedAt:    model.CreatedAt,
	}, nil
}
