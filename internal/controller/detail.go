package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/i18n"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/normalize"
)

// DetailView is the data behind one detail page
type DetailView struct {
	Detail models.Detail `json:"detail"`
	Card   models.Card   `json:"card"`
	Padded string        `json:"padded_id"`
}

// DetailPage loads a Pokémon and its species record
type DetailPage struct {
	*Machine
	deps Deps
	lang string
}

// NewDetailPage creates a detail controller. lang selects the species texts.
func NewDetailPage(deps Deps, lang string) *DetailPage {
	return &DetailPage{Machine: newMachine(), deps: deps.withDefaults(), lang: lang}
}

// Load resolves the route id. Every failure, including a bad id, yields a
// not-found *Failure; a bad id never reaches the catalog.
func (c *DetailPage) Load(ctx context.Context, rawID string) (DetailView, error) {
	id, err := catalog.ParseID(rawID)
	if err != nil {
		return DetailView{}, &Failure{Kind: KindNotFound, Key: i18n.KeyDetailNotFound, Err: err}
	}

	runID, err := c.begin()
	if err != nil {
		return DetailView{}, err
	}

	ctx, cancel := c.deps.runContext(ctx)
	defer cancel()

	raw, err := c.deps.Catalog.FetchByID(ctx, id)
	if err == nil {
		var species *catalog.Species
		species, err = c.deps.Catalog.FetchSpecies(ctx, raw.Species.URL)
		if err == nil {
			detail := normalize.Detail(raw, species, c.lang, c.deps.Placeholder)
			_ = c.fire(Resolve)
			return DetailView{
				Detail: detail,
				Card:   c.deps.Decorator.Card(detail.Pokemon),
				Padded: normalize.PadID(id),
			}, nil
		}
	}

	c.deps.Logger.Warn("Detail page failed",
		zap.String("run_id", runID),
		zap.Int("id", id),
		zap.Error(err),
	)
	return DetailView{}, fail(c.Machine, &Failure{Kind: KindNotFound, Key: i18n.KeyDetailNotFound, Err: err})
}
