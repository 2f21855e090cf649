package saga

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SagaStep is a single named step of a saga.
type SagaStep struct {
	Name    string
	Execute func(ctx context.Context) error
}

// StepError reports which step of a saga failed.
type StepError struct {
	Saga string
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("saga '%s' failed at step '%s': %v", e.Saga, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Saga runs a sequence of steps in order and stops at the first failure.
// Steps are forward only; whatever a failed run already wrote is left for
// the caller to reconcile.
type Saga struct {
	name   string
	steps  []SagaStep
	logger *zap.Logger
}

// NewSaga creates a new saga orchestrator.
func NewSaga(name string, logger *zap.Logger) *Saga {
	return &Saga{
		name:   name,
		steps:  make([]SagaStep, 0),
		logger: logger,
	}
}

// AddStep appends a step to the saga.
func (s *Saga) AddStep(step SagaStep) {
	s.steps = append(s.steps, step)
}

// Execute runs all steps in order. On failure the remaining steps are skipped
// and a *StepError is returned.
func (s *Saga) Execute(ctx context.Context) error {
	s.logger.Info("saga started", zap.String("saga", s.name))

	for _, step := range s.steps {
		s.logger.Info("executing saga step",
			zap.String("saga", s.name),
			zap.String("step", step.Name),
		)

		if err := step.Execute(ctx); err != nil {
			s.logger.Error("saga step failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			return &StepError{Saga: s.name, Step: step.Name, Err: err}
		}
	}

	s.logger.Info("saga completed successfully", zap.String("saga", s.name))
	return nil
}
