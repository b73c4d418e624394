package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	runner := runnerFunc(func(context.Context) error {
		if runs.Add(1) == 3 {
			cancel()
		}
		return errors.New("provider down")
	})

	err := NewScheduler(runner, 10*time.Millisecond, 0, discard()).Start(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestScheduler_BoundsEachRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var deadlineSet atomic.Bool
	runner := runnerFunc(func(runCtx context.Context) error {
		_, ok := runCtx.Deadline()
		deadlineSet.Store(ok)
		<-runCtx.Done()
		cancel()
		return runCtx.Err()
	})

	err := NewScheduler(runner, time.Hour, 20*time.Millisecond, discard()).Start(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, deadlineSet.Load())
}

func TestNewCron_RejectsInvalidExpression(t *testing.T) {
	_, err := NewCron(runnerFunc(func(context.Context) error { return nil }), "every day", 0, discard())
	assert.Error(t, err)

	_, err = NewCron(runnerFunc(func(context.Context) error { return nil }), "*/5 * * * * *", 0, discard())
	assert.Error(t, err, "seconds field is not accepted")
}

func TestCron_StopsWithContext(t *testing.T) {
	c, err := NewCron(runnerFunc(func(context.Context) error { return nil }), "0 3 * * *", time.Minute, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, c.Start(ctx), context.DeadlineExceeded)
}
