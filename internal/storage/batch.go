package storage

import (
	"context"
	"sync"
	"time"
)

// Batch is a cache view over a Store that holds writes in memory until Flush
// saves them in one transaction. Reads go straight to the store.
type Batch struct {
	store *Store

	mu      sync.Mutex
	pending []Entry
	ttl     time.Duration
}

// Batch starts an empty write batch
func (s *Store) Batch() *Batch {
	return &Batch{store: s}
}

// Get reads a committed payload
func (b *Batch) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return b.store.Get(ctx, key)
}

// Set queues payload for the next Flush. The batch is written with the ttl of
// the last Set.
func (b *Batch) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, Entry{Key: key, Payload: payload})
	b.ttl = ttl
	return nil
}

// Len reports how many writes are queued
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush writes the queued payloads and returns how many were saved. On error
// nothing is saved and the queue is kept for another attempt.
func (b *Batch) Flush(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return 0, nil
	}
	if err := b.store.BulkSet(ctx, b.pending, b.ttl); err != nil {
		return 0, err
	}
	n := len(b.pending)
	b.pending = nil
	return n, nil
}
