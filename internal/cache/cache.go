package cache

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/storage"
)

// Backend names accepted by Open
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendNone     = "none"
)

// Nop never stores anything
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Nop) Close() error { return nil }

// Backend is a cache the caller must close
type Backend interface {
	catalog.Cache
	io.Closer
}

// Open creates the named backend. dsn is the sqlite path or postgres DSN;
// redisURL is only read for the redis backend.
func Open(ctx context.Context, backend, dsn, redisURL string) (Backend, error) {
	switch backend {
	case BackendSQLite, BackendPostgres:
		driver := storage.DriverSQLite
		if backend == BackendPostgres {
			driver = storage.DriverPostgres
		}
		store, err := storage.New(driver, dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendRedis:
		r, err := DialRedis(ctx, redisURL)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendNone, "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
