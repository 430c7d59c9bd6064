package retry

import (
	"context"
	"time"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// DefaultWriteAttempts is the number of retries NewFileWriteExecutor allows.
const DefaultWriteAttempts = 4

// Executor orchestrates retry attempts with backoff and error classification.
// Execute is safe for concurrent use; WithOnRetry returns a new instance and
// leaves the receiver unchanged.
type Executor struct {
	classifier projgen.ErrorClassifier
	strategy   projgen.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier projgen.ErrorClassifier, strategy projgen.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// NewFileWriteExecutor retries file-lock errors DefaultWriteAttempts times.
func NewFileWriteExecutor() *Executor {
	return NewExecutor(NewFileLockClassifier(), NewExponentialBackoff(DefaultWriteAttempts))
}

// WithOnRetry returns a copy of e that calls callback before each retry.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation until it succeeds, fails fatally, runs out of
// attempts, or ctx is done. It returns the last error.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	lastErr := operation(ctx)
	if lastErr == nil || !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	maxAttempts := e.strategy.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil || !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
