package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBaseWorker(t *testing.T) {
	t.Run(`overlapping tick is skipped check`, func(t *testing.T) {
		worker := NewInstance("test_overlap", 0, time.Hour)
		release := make(chan struct{})
		started := make(chan struct{})
		done := make(chan bool)
		go func() {
			done <- worker.TryRun(context.TODO(), func(ctx context.Context) {
				close(started)
				<-release
			})
		}()
		<-started
		require.True(t, worker.IsRunning())
		calls := 0
		require.False(t, worker.TryRun(context.TODO(), func(ctx context.Context) { calls++ }))
		require.Equal(t, 0, calls)
		close(release)
		require.True(t, <-done)
		require.False(t, worker.IsRunning())
		require.True(t, worker.TryRun(context.TODO(), func(ctx context.Context) { calls++ }))
		require.Equal(t, 1, calls)
	})

	t.Run(`panic releases guard check`, func(t *testing.T) {
		worker := NewInstance("test_panic", 0, time.Hour)
		require.True(t, worker.TryRun(context.TODO(), func(ctx context.Context) { panic("boom") }))
		require.False(t, worker.IsRunning())
	})

	t.Run(`start and stop check`, func(t *testing.T) {
		worker := NewInstance("test_start", 0, 5*time.Millisecond)
		var ticks atomic.Int32
		worker.Start(context.TODO(), func(ctx context.Context) { ticks.Add(1) })
		worker.Start(context.TODO(), func(ctx context.Context) { ticks.Add(100) })
		require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
		worker.Stop()
		stopped := ticks.Load()
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, stopped, ticks.Load())
		require.Less(t, stopped, int32(100))
		worker.Stop()
	})
}
