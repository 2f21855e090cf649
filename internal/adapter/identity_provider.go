package adapter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/identity"
	"github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// IdentityProvider defines the Anti-Corruption Layer interface for the identity provider.
type IdentityProvider interface {
	// SignUp creates a credential and its profile atomically.
	SignUp(ctx context.Context, in SignUpInput) (identity.Identity, error)

	// SignIn checks a credential and returns the identity it belongs to.
	SignIn(ctx context.Context, email, password string) (identity.Identity, error)

	// SignOut ends the identity's session.
	SignOut(ctx context.Context, id identity.Identity) error

	// OnIdentityChanged registers fn for every sign-up, sign-in and sign-out.
	// The returned func removes the registration.
	OnIdentityChanged(fn func(identity.Change)) (unsubscribe func())
}

// SignUpInput carries the already-validated signup form.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Birthday string
}

// LocalIdentityProvider keeps credentials in the service database.
type LocalIdentityProvider struct {
	repo        identity.CredentialRepository
	bonus       int64
	bcryptCost  int
	logger      *zap.Logger
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func(identity.Change)
}

// NewLocalIdentityProvider creates a provider that grants bonus points on signup.
func NewLocalIdentityProvider(repo identity.CredentialRepository, bonus int64, logger *zap.Logger) *LocalIdentityProvider {
	return &LocalIdentityProvider{
		repo:        repo,
		bonus:       bonus,
		bcryptCost:  bcrypt.DefaultCost,
		logger:      logger,
		subscribers: make(map[int]func(identity.Change)),
	}
}

// SignUp hashes the password and stores credential and profile together.
func (p *LocalIdentityProvider) SignUp(ctx context.Context, in SignUpInput) (identity.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := p.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return identity.Identity{}, err
	}
	if existing != nil {
		return identity.Identity{}, emailInUse()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.bcryptCost)
	if err != nil {
		return identity.Identity{}, err
	}

	userID := uuid.New()
	prof, err := profile.NewProfile(userID, in.Name, email, in.Phone, in.Birthday, p.bonus)
	if err != nil {
		return identity.Identity{}, err
	}

	cred := identity.Credential{
		UserID:       userID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         auth.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.repo.CreateWithProfile(ctx, cred, prof); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return identity.Identity{}, emailInUse()
		}
		return identity.Identity{}, err
	}

	id := identity.Identity{UserID: userID, Email: email, Role: cred.Role}
	p.logger.Info("identity created", zap.String("user_id", userID.String()))
	p.notify(identity.Change{Kind: identity.ChangeSignedUp, Identity: id})
	return id, nil
}

// SignIn verifies the password against the stored hash.
func (p *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) (identity.Identity, error) {
	cred, err := p.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return identity.Identity{}, invalidCredential()
		}
		return identity.Identity{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return identity.Identity{}, invalidCredential()
	}

	id := identity.Identity{UserID: cred.UserID, Email: cred.Email, Role: cred.Role}
	p.notify(identity.Change{Kind: identity.ChangeSignedIn, Identity: id})
	return id, nil
}

// SignOut only notifies listeners; access tokens expire on their own.
func (p *LocalIdentityProvider) SignOut(_ context.Context, id identity.Identity) error {
	p.notify(identity.Change{Kind: identity.ChangeSignedOut, Identity: id})
	return nil
}

// OnIdentityChanged registers fn and returns its unsubscribe func.
func (p *LocalIdentityProvider) OnIdentityChanged(fn func(identity.Change)) func() {
	p.mu.Lock()
	key := p.nextID
	p.nextID++
	p.subscribers[key] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subscribers, key)
			p.mu.Unlock()
		})
	}
}

func (p *LocalIdentityProvider) notify(ch identity.Change) {
	p.mu.RLock()
	fns := make([]func(identity.Change), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		fns = append(fns, fn)
	}
	p.mu.RUnlock()

	for _, fn := range fns {
		fn(ch)
	}
}

func emailInUse() error {
	return &domain.DomainError{
		Err:   domain.ErrConflict,
		Cause: identity.ErrEmailAlreadyInUse,
	}
}

func invalidCredential() error {
	return &domain.DomainError{
		Err:   domain.ErrUnauthorized,
		Cause: identity.ErrInvalidCredentials,
	}
}
