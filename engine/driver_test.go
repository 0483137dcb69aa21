package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetris/engine"
)

func statsFor(stats *engine.DriverStats, name string) engine.SourceStats {
	for _, s := range stats.Sources {
		if s.Name == name {
			return s
		}
	}
	return engine.SourceStats{}
}

func TestDriverRunsTimersAndIntents(t *testing.T) {
	e, err := engine.New(engine.WithSeed(4))
	require.NoError(t, err)
	e.Restart()

	driver := engine.NewDriver(e, engine.WithTimeScale(1000))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	var moved bool
	require.NoError(t, driver.Submit(ctx, func(e *engine.Engine) {
		moved = e.MoveLeft()
	}))
	assert.True(t, moved)

	require.Eventually(t, func() bool {
		stats := driver.Stats()
		return statsFor(stats, "gravity").ExecutionCount > 0 && statsFor(stats, "clock").ExecutionCount > 0
	}, 5*time.Second, time.Millisecond)

	var phase engine.Phase
	require.NoError(t, driver.Submit(ctx, func(e *engine.Engine) {
		phase = e.Phase()
	}))
	assert.NotEqual(t, engine.Idle, phase)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	stats := driver.Stats()
	intents := statsFor(stats, "intent")
	assert.Equal(t, int64(2), intents.ExecutionCount)
	assert.LessOrEqual(t, intents.MinDuration, intents.MaxDuration)
	assert.Equal(t, stats.TotalExecutions,
		statsFor(stats, "gravity").ExecutionCount+statsFor(stats, "clock").ExecutionCount+intents.ExecutionCount)

	err = driver.Submit(context.Background(), func(*engine.Engine) {})
	assert.ErrorIs(t, err, engine.ErrDriverStopped)
	assert.ErrorIs(t, driver.Run(context.Background()), engine.ErrDriverRunning)
}

func TestDriverStopsGravityWhilePaused(t *testing.T) {
	e, err := engine.New(engine.WithSeed(4))
	require.NoError(t, err)
	e.Restart()
	require.True(t, e.Pause())

	driver := engine.NewDriver(e, engine.WithTimeScale(1000))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, driver.Run(ctx), context.DeadlineExceeded)
	assert.Zero(t, statsFor(driver.Stats(), "gravity").ExecutionCount)
	assert.Zero(t, e.Elapsed())
}

func TestSubmitHonoursContext(t *testing.T) {
	e, err := engine.New()
	require.NoError(t, err)
	driver := engine.NewDriver(e)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, driver.Submit(ctx, func(*engine.Engine) {}), context.DeadlineExceeded)
}
