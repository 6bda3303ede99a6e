package controller

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/i18n"
	"github.com/meur/pokedex/internal/normalize"
)

// Resolution is where a successful search navigates to
type Resolution struct {
	ID    int    `json:"id"`
	Path  string `json:"path"`
	Entry Entry  `json:"entry"`
}

// SearchResolve turns a name typed by the user into a detail page path
type SearchResolve struct {
	*Machine
	deps Deps
}

func NewSearchResolve(deps Deps) *SearchResolve {
	return &SearchResolve{Machine: newMachine(), deps: deps.withDefaults()}
}

// Run resolves query. Blank input fails validation without reaching the
// catalog and leaves the machine in Idle.
func (c *SearchResolve) Run(ctx context.Context, query string) (Resolution, error) {
	name := strings.TrimSpace(query)
	if name == "" {
		return Resolution{}, &Failure{
			Kind: KindValidation,
			Key:  i18n.KeySearchEmpty,
			Err:  fmt.Errorf("%w: empty search", catalog.ErrValidation),
		}
	}

	runID, err := c.begin()
	if err != nil {
		return Resolution{}, err
	}

	ctx, cancel := c.deps.runContext(ctx)
	defer cancel()

	raw, err := c.deps.Catalog.FetchByName(ctx, name)
	if err != nil {
		kind := Classify(err)
		key := i18n.KeySearchNotFound
		if kind == KindTransport {
			key = i18n.KeyCatalogUnavailable
		}
		c.deps.Logger.Info("Search did not resolve",
			zap.String("run_id", runID),
			zap.String("query", name),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
		return Resolution{}, fail(c.Machine, &Failure{Kind: kind, Key: key, Err: err})
	}

	entry := c.deps.entry(raw)
	_ = c.fire(Resolve)
	return Resolution{
		ID:    entry.Pokemon.ID,
		Path:  normalize.DetailPath(entry.Pokemon.ID),
		Entry: entry,
	}, nil
}
