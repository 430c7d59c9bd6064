package retry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = &fs.PathError{Op: "open", Path: "Core.csproj", Err: syscall.EBUSY}

type flakyOperation struct {
	invocations int
	failures    int
	err         error
}

func (o *flakyOperation) run(context.Context) error {
	o.invocations++
	if o.invocations <= o.failures {
		return o.err
	}
	return nil
}

func fastExecutor(maxAttempts int) *Executor {
	return NewExecutor(NewFileLockClassifier(), NewExponentialBackoff(maxAttempts,
		WithInitialDelay(time.Millisecond),
		WithJitter(0),
	))
}

func TestFileLockClassifier(t *testing.T) {
	c := NewFileLockClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"busy", errBusy, true},
		{"wrapped again", fmt.Errorf("write: %w", syscall.EAGAIN), true},
		{"interrupted", syscall.EINTR, true},
		{"permission", &fs.PathError{Op: "open", Path: "x", Err: syscall.EACCES}, false},
		{"not exist", fs.ErrNotExist, false},
		{"plain", errors.New("disk on fire"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	b := NewExponentialBackoff(5, WithInitialDelay(10*time.Millisecond), WithMaxDelay(50*time.Millisecond), WithJitter(0))

	assert.Equal(t, 10*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 20*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 40*time.Millisecond, b.NextDelay(2))
	assert.Equal(t, 50*time.Millisecond, b.NextDelay(3), "capped at max delay")
	assert.Equal(t, 5, b.MaxAttempts())
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	high := NewExponentialBackoff(1, WithInitialDelay(100*time.Millisecond), WithJitter(0.1), WithJitterFunc(func() float64 { return 1.0 }))
	low := NewExponentialBackoff(1, WithInitialDelay(100*time.Millisecond), WithJitter(0.1), WithJitterFunc(func() float64 { return 0.0 }))

	assert.Equal(t, 110*time.Millisecond, high.NextDelay(0))
	assert.Equal(t, 90*time.Millisecond, low.NextDelay(0))
}

func TestExponentialBackoff_Multiplier(t *testing.T) {
	b := NewExponentialBackoff(1, WithInitialDelay(10*time.Millisecond), WithMultiplier(3), WithJitter(0))
	assert.Equal(t, 90*time.Millisecond, b.NextDelay(2))
}

func TestExecutor_SuccessOnFirstAttempt(t *testing.T) {
	op := &flakyOperation{}
	require.NoError(t, fastExecutor(3).Execute(context.Background(), op.run))
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_RetriesTransientErrors(t *testing.T) {
	op := &flakyOperation{failures: 2, err: errBusy}

	var retries []int
	executor := fastExecutor(3).WithOnRetry(func(attempt int, err error, _ time.Duration) {
		retries = append(retries, attempt)
		assert.ErrorIs(t, err, syscall.EBUSY)
	})

	require.NoError(t, executor.Execute(context.Background(), op.run))
	assert.Equal(t, 3, op.invocations)
	assert.Equal(t, []int{0, 1}, retries)
}

func TestExecutor_FatalErrorStopsImmediately(t *testing.T) {
	fatal := &fs.PathError{Op: "open", Path: "x", Err: syscall.EACCES}
	op := &flakyOperation{failures: 5, err: fatal}

	err := fastExecutor(3).Execute(context.Background(), op.run)
	assert.ErrorIs(t, err, syscall.EACCES)
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_ExhaustsAttempts(t *testing.T) {
	op := &flakyOperation{failures: 10, err: errBusy}

	err := fastExecutor(2).Execute(context.Background(), op.run)
	assert.ErrorIs(t, err, syscall.EBUSY)
	assert.Equal(t, 3, op.invocations, "initial attempt plus two retries")
}

func TestExecutor_ZeroAttemptsMeansNoRetry(t *testing.T) {
	op := &flakyOperation{failures: 1, err: errBusy}

	err := fastExecutor(0).Execute(context.Background(), op.run)
	assert.ErrorIs(t, err, syscall.EBUSY)
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_ContextCancelled(t *testing.T) {
	op := &flakyOperation{failures: 10, err: errBusy}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fastExecutor(3).Execute(ctx, op.run)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.invocations)
}

func TestWithOnRetry_DoesNotModifyReceiver(t *testing.T) {
	base := fastExecutor(1)
	configured := base.WithOnRetry(func(int, error, time.Duration) {})

	assert.Nil(t, base.onRetry)
	assert.NotNil(t, configured.onRetry)
}

func TestNewExecutor_NilArguments(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, NewExponentialBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewFileLockClassifier(), nil) })
}

func TestNewFileWriteExecutor(t *testing.T) {
	e := NewFileWriteExecutor()
	assert.Equal(t, DefaultWriteAttempts, e.strategy.MaxAttempts())
}
