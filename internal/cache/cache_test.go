package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/pokedex/internal/storage"
)

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c Nop
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, BackendNone, "", "")
	require.NoError(t, err)
	assert.IsType(t, Nop{}, b)

	b, err = Open(ctx, BackendSQLite, filepath.Join(t.TempDir(), "cache.db"), "")
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &storage.Store{}, b)

	require.NoError(t, b.Set(ctx, "k", []byte("v"), time.Hour))
	got, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	_, err = Open(ctx, "memcached", "", "")
	assert.ErrorContains(t, err, "unknown cache backend")

	_, err = Open(ctx, BackendRedis, "", "not a url")
	assert.Error(t, err)
}

func TestRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()

	r, err := DialRedis(ctx, url)
	require.NoError(t, err)
	defer r.Close()

	key := "test/" + t.Name()
	_, ok, err := r.Get(ctx, key+"/missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, key, []byte(`{"id":25}`), time.Minute))
	got, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":25}`, string(got))
}
