package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/cinemax-hub/service-checkout/internal/domain/profile"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileResolver waits for a just-created profile to become readable.
type ProfileResolver struct {
	profiles profile.ProfileRepository
	retries  int
	interval time.Duration
	logger   *zap.Logger
}

// NewProfileResolver creates a resolver polling at a fixed interval.
// retries counts the reads made after the first miss.
func NewProfileResolver(profiles profile.ProfileRepository, retries int, interval time.Duration, logger *zap.Logger) *ProfileResolver {
	if retries < 0 {
		retries = 0
	}
	return &ProfileResolver{
		profiles: profiles,
		retries:  retries,
		interval: interval,
		logger:   logger,
	}
}

// Resolve reads the profile, retrying only while it is not found.
// Exhausting the retries yields a TransientStoreError.
func (r *ProfileResolver) Resolve(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	var (
		found   *profile.Profile
		attempt int
	)

	op := func() error {
		attempt++
		p, err := r.profiles.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return backoff.Permanent(err)
		}
		found = p
		return nil
	}

	notify := func(err error, wait time.Duration) {
		r.logger.Debug("profile not visible yet, retrying",
			zap.String("user_id", userID.String()),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.interval), uint64(r.retries)),
		ctx,
	)
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("profile never became visible",
				zap.String("user_id", userID.String()),
				zap.Int("attempts", attempt),
			)
			return nil, domain.NewTransientStoreError(
				fmt.Sprintf("profile %s not available after %d attempts", userID, attempt), err)
		}
		return nil, err
	}
	return found, nil
}
