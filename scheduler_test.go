package launcher

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RequiresCallback(t *testing.T) {
	s := NewDefaultSuiteScheduler(time.Second, true, log.New())
	err := s.Start(context.Background())
	require.ErrorContains(t, err, "callback must be registered")
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewDefaultSuiteScheduler(0, true, log.New())

	var calls atomic.Int32
	s.RegisterCallback(func() error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, int32(1), calls.Load())

	// no periodic goroutine should have been started
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestScheduler_RunOnce_PropagatesError(t *testing.T) {
	s := NewDefaultSuiteScheduler(0, true, log.New())
	s.RegisterCallback(func() error {
		return assert.AnError
	})
	require.ErrorIs(t, s.Start(context.Background()), assert.AnError)
}

func TestScheduler_Periodic(t *testing.T) {
	s := NewDefaultSuiteScheduler(10*time.Millisecond, false, log.New())

	var calls atomic.Int32
	s.RegisterCallback(func() error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))

	require.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond, "callback should run periodically")

	require.NoError(t, s.Stop())
	assert.True(t, s.Stopped())

	// no further runs after Stop
	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), stopped+1)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancelShutdown()
	require.NoError(t, s.WaitForShutdown(shutdownCtx))
}

func TestScheduler_ContextCancellation(t *testing.T) {
	s := NewDefaultSuiteScheduler(10*time.Millisecond, false, log.New())

	var calls atomic.Int32
	s.RegisterCallback(func() error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()

	require.Eventually(t, func() bool {
		return s.Stopped()
	}, time.Second, 5*time.Millisecond, "scheduler should stop after context cancellation")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancelShutdown()
	require.NoError(t, s.WaitForShutdown(shutdownCtx))
}

func TestScheduler_StopIdempotent(t *testing.T) {
	s := NewDefaultSuiteScheduler(time.Hour, false, log.New())
	s.RegisterCallback(func() error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}
