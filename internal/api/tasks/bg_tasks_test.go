package tasks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cinerate/proj/internal/lib/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	bgTasks := New(logger.Discard(), 3, 10)
	bgTasks.Run()
	var runned atomic.Int32
	for i := 0; i < 5; i++ {
		require.True(t, bgTasks.Add(func() { runned.Add(1) }))
	}
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.EqualValues(t, 5, runned.Load())
	assert.True(t, bgTasks.IsEmpty())
}

func TestPanicKeepsWorker(t *testing.T) {
	bgTasks := New(logger.Discard(), 1, 10)
	bgTasks.Run()
	taskRunned := false
	bgTasks.Add(func() { panic("boom") })
	bgTasks.Add(func() { taskRunned = true })
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.True(t, taskRunned)
}

func TestAddAfterShutdown(t *testing.T) {
	bgTasks := New(logger.Discard(), 1, 1)
	bgTasks.Run()
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.False(t, bgTasks.Add(func() {}))
	assert.NoError(t, bgTasks.Shutdown(context.Background()))
}

func TestAddQueueFull(t *testing.T) {
	bgTasks := New(logger.Discard(), 1, 1)
	// workers are not started, so the single slot stays occupied
	assert.True(t, bgTasks.Add(func() {}))
	assert.False(t, bgTasks.Add(func() {}))
	bgTasks.Run()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, bgTasks.Shutdown(ctx))
}
