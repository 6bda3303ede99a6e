package gather

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func value(v int, delay time.Duration) Task[int] {
	return func(ctx context.Context) (int, error) {
		select {
		case <-time.After(delay):
			return v, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

func TestAll_KeepsOrder(t *testing.T) {
	got, err := All(context.Background(),
		value(1, 30*time.Millisecond),
		value(2, 0),
		value(3, 10*time.Millisecond),
		value(4, 20*time.Millisecond),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestAll_RunsConcurrently(t *testing.T) {
	var inFlight, peak atomic.Int32
	task := func(ctx context.Context) (int, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return 0, nil
	}

	_, err := All(context.Background(), task, task, task, task)
	require.NoError(t, err)
	assert.Equal(t, int32(4), peak.Load())
}

func TestAll_FailFastWithoutPartialResults(t *testing.T) {
	boom := errors.New("boom")
	var canceled atomic.Bool

	slow := func(ctx context.Context) (int, error) {
		select {
		case <-time.After(5 * time.Second):
			return 1, nil
		case <-ctx.Done():
			canceled.Store(true)
			return 0, ctx.Err()
		}
	}
	failing := func(context.Context) (int, error) { return 0, boom }

	start := time.Now()
	got, err := All(context.Background(), slow, failing, value(3, 0), slow)

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.True(t, canceled.Load())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestAll_Empty(t *testing.T) {
	got, err := All[int](context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
