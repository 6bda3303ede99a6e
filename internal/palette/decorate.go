package palette

import (
	"strings"

	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/normalize"
)

// Decorator turns display records into cards
type Decorator struct {
	colors Set
}

// NewDecorator creates a decorator over the given colour tables
func NewDecorator(colors Set) *Decorator {
	return &Decorator{colors: colors}
}

// Card decorates one record. The primary type drives the accent and border colours.
func (d *Decorator) Card(p models.Pokemon) models.Card {
	primary := p.PrimaryType()

	chips := make([]models.Chip, 0, len(p.Types))
	for _, t := range p.Types {
		chips = append(chips, models.Chip{
			Type:  t,
			Label: normalize.Capitalize(strings.ReplaceAll(t, "-", " ")),
			Color: d.colors.ColorFor(t, Light),
		})
	}

	return models.Card{
		ID:          p.ID,
		Badge:       "#" + normalize.PadID(p.ID),
		Name:        p.Name,
		ImageURL:    p.ImageURL,
		AccentColor: d.colors.ColorFor(primary, Light),
		BorderColor: d.colors.ColorFor(primary, Dark),
		Chips:       chips,
		Stats: []models.StatRow{
			{Label: "HP", Value: p.Stats.HP},
			{Label: "Attack", Value: p.Stats.Attack},
			{Label: "Defense", Value: p.Stats.Defense},
		},
		Href: normalize.DetailPath(p.ID),
	}
}

// Cards decorates records in order
func (d *Decorator) Cards(ps []models.Pokemon) []models.Card {
	out := make([]models.Card, len(ps))
	for i, p := range ps {
		out[i] = d.Card(p)
	}
	return out
}
