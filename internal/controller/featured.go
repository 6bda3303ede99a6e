package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/gather"
	"github.com/meur/pokedex/internal/i18n"
)

// FeaturedBatch fetches the featured grid
type FeaturedBatch struct {
	*Machine
	deps Deps
}

func NewFeaturedBatch(deps Deps) *FeaturedBatch {
	return &FeaturedBatch{Machine: newMachine(), deps: deps.withDefaults()}
}

// Run draws FeaturedCount distinct ids from [1, FeaturedMaxID] and fetches
// them concurrently. The batch succeeds only if every fetch does.
func (c *FeaturedBatch) Run(ctx context.Context) ([]Entry, error) {
	return c.RunWith(ctx, nil)
}

// RunWith fetches a grid drawn earlier so it stays put across page loads.
// ids that are not a valid grid are ignored and a fresh one is drawn.
func (c *FeaturedBatch) RunWith(ctx context.Context, ids []int) ([]Entry, error) {
	runID, err := c.begin()
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.deps.runContext(ctx)
	defer cancel()

	if !ValidFeatured(ids) {
		ids = DrawDistinct(c.deps.IntN, FeaturedCount, FeaturedMaxID)
	}
	tasks := make([]gather.Task[Entry], len(ids))
	for i, id := range ids {
		tasks[i] = func(ctx context.Context) (Entry, error) {
			raw, err := c.deps.Catalog.FetchByID(ctx, id)
			if err != nil {
				return Entry{}, err
			}
			return c.deps.entry(raw), nil
		}
	}

	entries, err := gather.All(ctx, tasks...)
	if err != nil {
		c.deps.Logger.Warn("Featured batch failed",
			zap.String("run_id", runID),
			zap.Ints("ids", ids),
			zap.Error(err),
		)
		return nil, fail(c.Machine, &Failure{Kind: Classify(err), Key: i18n.KeyFeaturedFailed, Err: err})
	}

	_ = c.fire(Resolve)
	return entries, nil
}

// ValidFeatured reports whether ids could have come from a featured draw:
// FeaturedCount distinct ids in [1, FeaturedMaxID]
func ValidFeatured(ids []int) bool {
	if len(ids) != FeaturedCount {
		return false
	}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id < 1 || id > FeaturedMaxID {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}
