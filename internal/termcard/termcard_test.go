package termcard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/palette"
)

func pikachuCard() models.Card {
	return palette.NewDecorator(palette.Default()).Card(models.Pokemon{
		ID:    25,
		Name:  "Pikachu",
		Types: []string{"electric"},
		Stats: models.Stats{HP: 35, Attack: 55, Defense: 40},
	})
}

func TestRenderDetail(t *testing.T) {
	card := pikachuCard()
	out := RenderDetail(card, models.Detail{
		HeightM:  0.4,
		WeightKg: 6,
		Species: models.SpeciesInfo{
			Genus:       "Mouse Pokémon",
			Generation:  "Generation I",
			Habitat:     "Forest",
			Description: "Stores electricity.",
			Legendary:   true,
		},
	})

	for _, want := range []string{
		"#025", "Pikachu", "Electric", "HP", "35", "Attack", "55", "Defense", "40",
		"Mouse Pokémon", "0.4 m", "6.0 kg", "Generation I", "Forest", "Legendary", "Stores electricity.",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Mythical")
	assert.True(t, strings.HasPrefix(out, "╭"), "rounded border")
}
