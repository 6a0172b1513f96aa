package lockmanager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSerializable_SameKeyIsExclusive(t *testing.T) {
	m := NewLockManager()

	var inside int32
	var maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.DoSerializable(context.Background(), "provider-1", func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, m.locks)
}

func TestDoSerializable_DifferentKeysRunConcurrently(t *testing.T) {
	m := NewLockManager()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- m.DoSerializable(context.Background(), "a", func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	err := m.DoSerializable(context.Background(), "b", func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
}

func TestDoSerializable_ReturnsFnError(t *testing.T) {
	m := NewLockManager()
	want := errors.New("conflict")

	err := m.DoSerializable(context.Background(), "a", func(ctx context.Context) error { return want })
	assert.ErrorIs(t, err, want)
}

func TestDoSerializable_ContextCancelledWhileWaiting(t *testing.T) {
	m := NewLockManager()

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = m.DoSerializable(context.Background(), "a", func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := m.DoSerializable(ctx, "a", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}
