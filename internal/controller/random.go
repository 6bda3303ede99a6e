package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/i18n"
)

// RandomLookup fetches one uniformly random Pokémon
type RandomLookup struct {
	*Machine
	deps Deps
}

func NewRandomLookup(deps Deps) *RandomLookup {
	return &RandomLookup{Machine: newMachine(), deps: deps.withDefaults()}
}

// Run draws an id in [MinID, MaxID] and fetches it. On failure the machine
// ends up back in Idle and a *Failure is returned with no record.
func (c *RandomLookup) Run(ctx context.Context) (Entry, error) {
	runID, err := c.begin()
	if err != nil {
		return Entry{}, err
	}

	ctx, cancel := c.deps.runContext(ctx)
	defer cancel()

	id := c.deps.IntN(catalog.MaxID-catalog.MinID+1) + catalog.MinID
	raw, err := c.deps.Catalog.FetchByID(ctx, id)
	if err != nil {
		c.deps.Logger.Warn("Random lookup failed",
			zap.String("run_id", runID),
			zap.Int("id", id),
			zap.Error(err),
		)
		return Entry{}, fail(c.Machine, &Failure{Kind: Classify(err), Key: i18n.KeyLookupFailed, Err: err})
	}

	entry := c.deps.entry(raw)
	_ = c.fire(Resolve)
	return entry, nil
}
