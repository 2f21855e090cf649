package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingReconciler struct {
	calls  atomic.Int32
	minAge atomic.Int64
	err    error
}

func (c *countingReconciler) ReconcilePending(_ context.Context, minAge time.Duration) (*application.ReconcileResultDTO, error) {
	c.calls.Add(1)
	c.minAge.Store(int64(minAge))
	if c.err != nil {
		return nil, c.err
	}
	return &application.ReconcileResultDTO{Scanned: 2, Credited: 2}, nil
}

func TestCreditReconciler_SweepsOnStart(t *testing.T) {
	fake := &countingReconciler{}
	r, err := NewCreditReconciler(fake, time.Hour, 30*time.Second, zap.NewNop())
	require.NoError(t, err)

	r.Start()
	defer func() { assert.NoError(t, r.Stop()) }()

	assert.Eventually(t, func() bool { return fake.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(30*time.Second), fake.minAge.Load())
}

func TestCreditReconciler_SweepErrorKeepsScheduler(t *testing.T) {
	fake := &countingReconciler{err: errors.New("db down")}
	r, err := NewCreditReconciler(fake, time.Second, time.Second, zap.NewNop())
	require.NoError(t, err)

	r.Start()
	defer func() { assert.NoError(t, r.Stop()) }()

	assert.Eventually(t, func() bool { return fake.calls.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
}
