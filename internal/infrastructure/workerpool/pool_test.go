package workerpool

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmitRunsTask(t *testing.T) {
	p, err := New(2, nil)
	require.NoError(t, err)
	defer p.Shutdown(time.Second)

	var wg sync.WaitGroup
	wg.Add(1)
	ran := false
	require.NoError(t, p.Submit(context.Background(), func() {
		defer wg.Done()
		ran = true
	}))
	wg.Wait()
	require.True(t, ran)
}

func TestSubmitRejectsWhenFull(t *testing.T) {
	p, err := New(1, nil)
	require.NoError(t, err)
	defer p.Shutdown(time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() {
		close(started)
		<-release
	}))
	<-started

	err = p.Submit(context.Background(), func() {})
	require.ErrorIs(t, err, ErrPoolOverload)
	close(release)
}

func TestSubmitHonoursCancelledContext(t *testing.T) {
	p, err := New(1, nil)
	require.NoError(t, err)
	defer p.Shutdown(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Submit(ctx, func() {}), context.Canceled)
}

func TestPanickingTaskDoesNotKillPool(t *testing.T) {
	p, err := New(1, nil)
	require.NoError(t, err)
	defer p.Shutdown(time.Second)

	require.NoError(t, p.Submit(context.Background(), func() { panic("boom") }))

	done := make(chan struct{})
	require.Eventually(t, func() bool {
		return p.Submit(context.Background(), func() { close(done) }) == nil
	}, time.Second, 10*time.Millisecond)
	<-done
}

func TestRunningCountsBusyWorkers(t *testing.T) {
	p, err := New(2, nil)
	require.NoError(t, err)
	defer p.Shutdown(time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() {
		close(started)
		<-release
	}))
	<-started
	require.Equal(t, 1, p.Running())
	close(release)
}
