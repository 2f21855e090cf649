package identity

import (
	"context"
	"errors"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/google/uuid"
)

// Provider error kinds, surfaced verbatim to the caller.
var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credential")
)

// Credential is the sign-in record of a user.
type Credential struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Identity is an authenticated user as seen by the rest of the service.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// ChangeKind tells listeners what happened to an identity.
type ChangeKind string

const (
	ChangeSignedUp  ChangeKind = "signed_up"
	ChangeSignedIn  ChangeKind = "signed_in"
	ChangeSignedOut ChangeKind = "signed_out"
)

// Change is one entry of the identity change stream.
type Change struct {
	Kind     ChangeKind
	Identity Identity
}

// CredentialRepository persists credentials.
type CredentialRepository interface {
	// CreateWithProfile stores the credential and its profile in one transaction.
	CreateWithProfile(ctx context.Context, cred Credential, p *profile.Profile) error
	FindByEmail(ctx context.Context, email string) (*Credential, error)
}
