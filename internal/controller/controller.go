// Package controller implements the view controllers behind the pages: random
// lookup, featured batch, search and detail. Each one is a small state machine
// (see Transition) created per request.
package controller

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/normalize"
	"github.com/meur/pokedex/internal/palette"
)

const (
	// FeaturedCount is the size of the featured grid
	FeaturedCount = 4
	// FeaturedMaxID bounds the featured ids to the first generation
	FeaturedMaxID = 151

	defaultRunTimeout = 15 * time.Second
)

// Fetcher is the part of the catalog client the controllers use
type Fetcher interface {
	FetchByID(ctx context.Context, id int) (*catalog.Pokemon, error)
	FetchByName(ctx context.Context, name string) (*catalog.Pokemon, error)
	FetchSpecies(ctx context.Context, url string) (*catalog.Species, error)
}

// Deps are shared by every controller. All fields are safe for concurrent use.
type Deps struct {
	Catalog     Fetcher
	Decorator   *palette.Decorator
	Logger      *zap.Logger
	Placeholder string
	// Timeout bounds one controller run. Zero means the default; negative disables it.
	Timeout time.Duration
	// IntN returns a uniform int in [0, n). Defaults to math/rand/v2.
	IntN func(n int) int
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Decorator == nil {
		d.Decorator = palette.NewDecorator(palette.Default())
	}
	if d.Placeholder == "" {
		d.Placeholder = normalize.PlaceholderImage
	}
	if d.Timeout == 0 {
		d.Timeout = defaultRunTimeout
	}
	if d.IntN == nil {
		d.IntN = rand.IntN
	}
	return d
}

func (d Deps) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.Timeout < 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.Timeout)
}

// Entry is one resolved record together with its card
type Entry struct {
	Pokemon models.Pokemon `json:"pokemon"`
	Card    models.Card    `json:"card"`
}

func (d Deps) entry(raw *catalog.Pokemon) Entry {
	p := normalize.Pokemon(raw, d.Placeholder)
	return Entry{Pokemon: p, Card: d.Decorator.Card(p)}
}

// fail moves a loading machine to Failure and back to Idle
func fail(m *Machine, f *Failure) error {
	_ = m.fire(Reject)
	_ = m.fire(Reset)
	return f
}

// DrawDistinct draws n distinct ids from [1, hi] by rejection sampling:
// a draw that collides with an earlier one is thrown away and redrawn.
// n is capped at hi.
func DrawDistinct(intN func(int) int, n, hi int) []int {
	if hi < 1 || n < 1 {
		return nil
	}
	if n > hi {
		n = hi
	}

	seen := make(map[int]struct{}, n)
	ids := make([]int, 0, n)
	for len(ids) < n {
		id := intN(hi) + 1
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
