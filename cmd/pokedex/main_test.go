package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/pokedex/internal/catalog/catalogtest"
	"github.com/meur/pokedex/internal/controller"
	"github.com/meur/pokedex/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pokedex dev\n", out)
}

func TestShow(t *testing.T) {
	fake := catalogtest.NewServer(t)
	t.Setenv("POKEDEX_CATALOG_BASE_URL", fake.URL)

	out, err := execute(t, "show", "pikachu", "--cache", "none", "--json")
	require.NoError(t, err)

	var dv controller.DetailView
	require.NoError(t, json.Unmarshal([]byte(out), &dv), out)
	assert.Equal(t, "Pikachu", dv.Detail.Pokemon.Name)
	assert.Equal(t, "#025", dv.Card.Badge)

	_, err = execute(t, "show", "missingno", "--cache", "none", "--json")
	assert.EqualError(t, err, "Pokémon not found. Check the name and try again.")
}

func TestWarm_FillsCache(t *testing.T) {
	fake := catalogtest.NewServer(t)
	fake.Synthesize = true
	t.Setenv("POKEDEX_CATALOG_BASE_URL", fake.URL)
	dsn := filepath.Join(t.TempDir(), "cache.db")
	t.Setenv("POKEDEX_CACHE_DSN", dsn)

	_, err := execute(t, "warm", "--cache", "sqlite", "--from", "1", "--to", "7", "--concurrency", "3", "--batch", "3")
	require.NoError(t, err)
	assert.Equal(t, 14, fake.Requests(), "one pokemon and one species request per id")

	store, err := storage.New(storage.DriverSQLite, dsn)
	require.NoError(t, err)
	st, err := store.Stats(context.Background())
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.Equal(t, storage.Stats{Entries: 14}, st, "every batch was flushed")

	// Second pass is served entirely from sqlite
	_, err = execute(t, "warm", "--cache", "sqlite", "--from", "1", "--to", "7", "--purge")
	require.NoError(t, err)
	assert.Equal(t, 14, fake.Requests())
}

func TestWarm_RejectsBadRange(t *testing.T) {
	_, err := execute(t, "warm", "--cache", "none", "--from", "9", "--to", "3", "--purge=false")
	assert.ErrorContains(t, err, "is before --from")

	_, err = execute(t, "warm", "--cache", "none", "--from", "1", "--to", "2", "--purge")
	assert.ErrorContains(t, err, "--purge needs a sqlite or postgres cache")
}
