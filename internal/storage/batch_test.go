package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_WritesOnFlush(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	b := s.Batch()

	require.NoError(t, b.Set(ctx, "pokemon/1", []byte(`{"id":1}`), time.Hour))
	require.NoError(t, b.Set(ctx, "pokemon/4", []byte(`{"id":4}`), time.Hour))
	assert.Equal(t, 2, b.Len())

	_, ok, err := b.Get(ctx, "pokemon/1")
	require.NoError(t, err)
	assert.False(t, ok, "queued writes are not visible before Flush")

	n, err := b.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, b.Len())

	got, ok, err := b.Get(ctx, "pokemon/4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"id":4}`), got)

	n, err = b.Flush(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBatch_FailedFlushKeepsQueue(t *testing.T) {
	s := newTestStore(t)
	b := s.Batch()
	require.NoError(t, b.Set(context.Background(), "k", []byte("v"), time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Flush(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, b.Len())

	n, err := b.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
