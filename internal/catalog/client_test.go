package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/catalog/catalogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = payload
	m.sets++
	return nil
}

func newClient(t *testing.T, srv *catalogtest.Server, opts ...catalog.Option) *catalog.Client {
	t.Helper()
	c, err := catalog.New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "25", want: 25},
		{in: "025", want: 25},
		{in: " 7 ", want: 7},
		{in: "1010", want: 1010},
		{in: "1", want: 1},
		{in: "0", wantErr: true},
		{in: "9999", wantErr: true},
		{in: "1011", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "+3", wantErr: true},
		{in: "pikachu", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := catalog.ParseID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, catalog.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchByID(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)

	p, err := c.FetchByID(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, p.ID)
	assert.Equal(t, "pikachu", p.Name)
	require.Len(t, p.Types, 1)
	assert.Equal(t, "electric", p.Types[0].Type.Name)
	require.NotNil(t, p.Sprites.Other.OfficialArtwork.FrontDefault)
}

func TestFetchByID_OutOfRangeNeverHitsNetwork(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)

	for _, id := range []int{0, -1, 1011, 9999} {
		_, err := c.FetchByID(context.Background(), id)
		assert.ErrorIs(t, err, catalog.ErrValidation, "id %d", id)
	}
	assert.Equal(t, 0, srv.Requests())
}

func TestFetchByName_NormalizesQuery(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)

	p, err := c.FetchByName(context.Background(), "  PiKaChU ")
	require.NoError(t, err)
	assert.Equal(t, 25, p.ID)
}

func TestFetchByName_Empty(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)

	_, err := c.FetchByName(context.Background(), "   ")
	assert.ErrorIs(t, err, catalog.ErrValidation)
	assert.Equal(t, 0, srv.Requests())
}

func TestFetch_NotFound(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)

	_, err := c.FetchByName(context.Background(), "missingno")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	srv.FailWith("4", http.StatusInternalServerError)
	_, err = c.FetchByID(context.Background(), 4)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestFetch_NoRetry(t *testing.T) {
	srv := catalogtest.NewServer(t)
	srv.FailWith("7", http.StatusServiceUnavailable)
	c := newClient(t, srv)

	_, err := c.FetchByID(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, 1, srv.Requests())
}

func TestFetch_TransportError(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)
	srv.Close()

	_, err := c.FetchByID(context.Background(), 25)
	assert.ErrorIs(t, err, catalog.ErrTransport)
	assert.False(t, errors.Is(err, catalog.ErrNotFound))
}

func TestFetch_ContextCanceled(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchByID(ctx, 25)
	assert.ErrorIs(t, err, catalog.ErrTransport)
}

func TestFetchSpecies(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)

	p, err := c.FetchByID(context.Background(), 25)
	require.NoError(t, err)

	s, err := c.FetchSpecies(context.Background(), p.Species.URL)
	require.NoError(t, err)
	assert.Equal(t, 25, s.ID)
	require.NotEmpty(t, s.Genera)
}

func TestFetchSpecies_ForeignOriginRejected(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newClient(t, srv)

	_, err := c.FetchSpecies(context.Background(), "http://evil.example/pokemon-species/25/")
	assert.ErrorIs(t, err, catalog.ErrValidation)
	assert.Equal(t, 0, srv.Requests())
}

func TestFetch_UsesCache(t *testing.T) {
	srv := catalogtest.NewServer(t)
	cache := &memCache{}
	c := newClient(t, srv, catalog.WithCache(cache, time.Hour))

	for i := 0; i < 3; i++ {
		p, err := c.FetchByID(context.Background(), 25)
		require.NoError(t, err)
		assert.Equal(t, "pikachu", p.Name)
	}
	assert.Equal(t, 1, srv.Requests())
	assert.Equal(t, 1, cache.sets)
}

func TestFetch_NotFoundIsNotCached(t *testing.T) {
	srv := catalogtest.NewServer(t)
	cache := &memCache{}
	c := newClient(t, srv, catalog.WithCache(cache, time.Hour))

	_, err := c.FetchByName(context.Background(), "missingno")
	require.Error(t, err)
	assert.Equal(t, 0, cache.sets)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := catalog.New("not a url")
	assert.Error(t, err)
}

// listingServer answers every path with the catalog's paginated index
// document, which decodes cleanly but carries no record
func listingServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1302,"next":null,"results":[]}`))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func TestFetch_EmptyRecordIsNotFound(t *testing.T) {
	ts, _ := listingServer(t)
	cache := &memCache{}
	c, err := catalog.New(ts.URL, catalog.WithCache(cache, time.Hour))
	require.NoError(t, err)
	ctx := context.Background()

	p, err := c.FetchByID(ctx, 25)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Nil(t, p)

	p, err = c.FetchByName(ctx, "pikachu")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Nil(t, p)

	s, err := c.FetchSpecies(ctx, ts.URL+"/pokemon-species/25/")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Nil(t, s)

	assert.Equal(t, 0, cache.sets, "records without an id are never cached")
}

func TestFetch_DiscardsCachedEmptyRecord(t *testing.T) {
	srv := catalogtest.NewServer(t)
	cache := &memCache{}
	c := newClient(t, srv, catalog.WithCache(cache, time.Hour))
	require.NoError(t, cache.Set(context.Background(), srv.URL+"/pokemon/25", []byte(`{"count":1}`), time.Hour))

	p, err := c.FetchByID(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, p.ID)
	assert.Equal(t, 1, srv.Requests())
}

func TestFetchByName_DotSegments(t *testing.T) {
	ts, hits := listingServer(t)
	c, err := catalog.New(ts.URL)
	require.NoError(t, err)

	for _, q := range []string{".", "..", " .. "} {
		_, err := c.FetchByName(context.Background(), q)
		assert.ErrorIs(t, err, catalog.ErrNotFound, "query %q", q)
	}
	assert.Zero(t, hits.Load())
}
