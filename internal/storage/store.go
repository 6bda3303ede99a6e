// Package storage keeps raw catalog payloads in a SQL table so repeated
// lookups skip the network. SQLite is the default; Postgres works for a
// cache shared between instances.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Store handles all database operations
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Entry is one payload to cache
type Entry struct {
	Key     string
	Payload []byte
}

// Stats summarises the cache table
type Stats struct {
	Entries int `json:"entries"`
	Expired int `json:"expired"`
}

// New opens the database and runs migrations. For sqlite3 dsn is a file path.
func New(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, driver: driver, now: time.Now}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS catalog_cache (
			cache_key TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			expires_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_cache_expires ON catalog_cache(expires_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// rebind rewrites ? placeholders into $1, $2... for postgres
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const upsertPayload = `
	INSERT INTO catalog_cache (cache_key, payload, expires_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at
`

// Get returns the payload stored under key. Expired rows count as misses.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	var expiresAt int64
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT payload, expires_at FROM catalog_cache WHERE cache_key = ?`), key,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if expiresAt <= s.now().Unix() {
		return nil, false, nil
	}
	return []byte(payload), true, nil
}

// Set stores payload under key for ttl
func (s *Store) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	_, err := s.db.ExecContext(ctx, s.rebind(upsertPayload), key, string(payload), s.expiry(ttl))
	return err
}

// BulkSet stores several payloads in one transaction
func (s *Store) BulkSet(ctx context.Context, entries []Entry, ttl time.Duration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(upsertPayload))
	if err != nil {
		return err
	}
	defer stmt.Close()

	expiresAt := s.expiry(ttl)
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Key, string(e.Payload), expiresAt); err != nil {
			return fmt.Errorf("caching %s: %w", e.Key, err)
		}
	}

	return tx.Commit()
}

// Purge deletes expired rows and returns how many went
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM catalog_cache WHERE expires_at <= ?`), s.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats counts live and expired rows
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN expires_at <= ? THEN 1 ELSE 0 END), 0)
		FROM catalog_cache
	`), s.now().Unix()).Scan(&st.Entries, &st.Expired)
	return st, err
}

func (s *Store) expiry(ttl time.Duration) int64 {
	return s.now().Add(ttl).Unix()
}
