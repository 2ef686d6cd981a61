package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_RunNowAndEvery(t *testing.T) {
	s := New(nil)
	var n atomic.Int32
	require.NoError(t, s.Add("@every 1s", "tick", func(context.Context) error {
		n.Add(1)
		return nil
	}, true))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return n.Load() >= 1 }, time.Second, 10*time.Millisecond, "runNow")
	require.Eventually(t, func() bool { return n.Load() >= 2 }, 3*time.Second, 20*time.Millisecond, "scheduled")
	assert.False(t, s.Next("tick").IsZero())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestAdd_Errors(t *testing.T) {
	s := New(nil)
	noop := func(context.Context) error { return nil }

	assert.Error(t, s.Add("whenever", "bad", noop, false))
	require.NoError(t, s.Add("@every 1h", "once", noop, false))
	assert.Error(t, s.Add("@every 1h", "once", noop, false))
	assert.True(t, s.Next("missing").IsZero())
}
