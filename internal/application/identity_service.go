package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/adapter"
	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/cinemax-hub/service-checkout/internal/domain/identity"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SignUpRequest is the signup form.
type SignUpRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,contains=@"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Phone           string `json:"phone"`
	Birthday        string `json:"birthday"`
	AcceptTerms     bool   `json:"accept_terms" validate:"required"`
}

// SignInRequest is the signin form.
type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResultDTO is returned by signup and signin.
type AuthResultDTO struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Profile     ProfileDTO `json:"profile"`
}

// IdentityService signs users up and in, and resolves their profile.
type IdentityService struct {
	provider    adapter.IdentityProvider
	resolver    *ProfileResolver
	jwtManager  *auth.JWTManager
	publisher   events.Publisher
	validate    *validator.Validate
	unsubscribe func()
	logger      *zap.Logger
}

// NewIdentityService creates a new IdentityService subscribed to identity changes.
func NewIdentityService(
	provider adapter.IdentityProvider,
	resolver *ProfileResolver,
	jwtManager *auth.JWTManager,
	publisher events.Publisher,
	logger *zap.Logger,
) *IdentityService {
	s := &IdentityService{
		provider:   provider,
		resolver:   resolver,
		jwtManager: jwtManager,
		publisher:  publisher,
		validate:   validator.New(),
		logger:     logger,
	}
	s.unsubscribe = provider.OnIdentityChanged(s.onIdentityChanged)
	return s
}

// SignUp validates the form, creates the identity and waits for its profile.
func (s *IdentityService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResultDTO, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	id, err := s.provider.SignUp(ctx, adapter.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Birthday: req.Birthday,
	})
	if err != nil {
		return nil, err
	}
	return s.authenticate(ctx, id)
}

// SignIn checks the credential and returns a token plus profile.
func (s *IdentityService) SignIn(ctx context.Context, req SignInRequest) (*AuthResultDTO, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	id, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.authenticate(ctx, id)
}

// SignOut ends the identity's session.
func (s *IdentityService) SignOut(ctx context.Context, userID uuid.UUID, email, role string) error {
	return s.provider.SignOut(ctx, identity.Identity{UserID: userID, Email: email, Role: role})
}

// Close stops listening for identity changes.
func (s *IdentityService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *IdentityService) authenticate(ctx context.Context, id identity.Identity) (*AuthResultDTO, error) {
	p, err := s.resolver.Resolve(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(id.UserID, id.Email, id.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResultDTO{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Profile:     toProfileDTO(p),
	}, nil
}

func (s *IdentityService) onIdentityChanged(ch identity.Change) {
	s.logger.Info("identity changed",
		zap.String("kind", string(ch.Kind)),
		zap.String("user_id", ch.Identity.UserID.String()),
	)
	if ch.Kind != identity.ChangeSignedUp {
		return
	}

	event := events.UserSignedUpEvent{
		UserID:     ch.Identity.UserID,
		Email:      ch.Identity.Email,
		OccurredAt: time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.TopicUserEvents, events.UserSignedUp, ch.Identity.UserID.String(), event); err != nil {
		s.logger.Error("failed to publish user signed up event", zap.Error(err))
	}
}

func (s *IdentityService) validateStruct(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.NewValidationError(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		if fe.Field() == "AcceptTerms" {
			return "terms must be accepted"
		}
		return field + " is required"
	case "email":
		return "invalid email"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "eqfield":
		return "passwords do not match"
	}
	return field + " is invalid"
}
