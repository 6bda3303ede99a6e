// Package normalize turns raw catalog records into display records.
//
// Every function here is pure: absent optional fields degrade to documented
// fallbacks (stats to 0, images to the placeholder) instead of failing.
package normalize

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
)

// PlaceholderImage is served from the embedded static assets
const PlaceholderImage = "/static/placeholder.svg"

// DetailPrefix is the route prefix of the detail page
const DetailPrefix = "/pokemon/"

// Pokemon builds the display record for raw. placeholder replaces a missing
// image; an empty placeholder means PlaceholderImage.
func Pokemon(raw *catalog.Pokemon, placeholder string) models.Pokemon {
	if placeholder == "" {
		placeholder = PlaceholderImage
	}
	if raw == nil {
		return models.Pokemon{ImageURL: placeholder, Types: []string{}}
	}

	return models.Pokemon{
		ID:       raw.ID,
		Name:     Capitalize(raw.Name),
		ImageURL: imageURL(raw.Sprites, placeholder),
		Types:    typeNames(raw.Types),
		Stats: models.Stats{
			HP:      baseStat(raw.Stats, "hp"),
			Attack:  baseStat(raw.Stats, "attack"),
			Defense: baseStat(raw.Stats, "defense"),
		},
	}
}

// Detail combines a record and its species into the detail page model
func Detail(raw *catalog.Pokemon, species *catalog.Species, lang, placeholder string) models.Detail {
	d := models.Detail{
		Pokemon: Pokemon(raw, placeholder),
		Species: Species(species, lang),
	}
	if raw != nil {
		d.HeightM = float64(raw.Height) / 10
		d.WeightKg = float64(raw.Weight) / 10
	}
	return d
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
// Multi-word names are not title-cased.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// PadID formats an id with at least three digits. Wider ids are never truncated.
func PadID(id int) string {
	return fmt.Sprintf("%03d", id)
}

// DetailPath is the navigation target for a record
func DetailPath(id int) string {
	return DetailPrefix + PadID(id)
}

// Species extracts the genus and newest description in lang, falling back to English
func Species(raw *catalog.Species, lang string) models.SpeciesInfo {
	if raw == nil {
		return models.SpeciesInfo{}
	}

	info := models.SpeciesInfo{
		Generation: generationLabel(raw.Generation.Name),
		Legendary:  raw.IsLegendary,
		Mythical:   raw.IsMythical,
	}
	if raw.Habitat != nil {
		info.Habitat = Capitalize(strings.ReplaceAll(raw.Habitat.Name, "-", " "))
	}

	for _, l := range languages(lang) {
		if info.Genus == "" {
			for _, g := range raw.Genera {
				if g.Language.Name == l {
					info.Genus = g.Genus
					break
				}
			}
		}
		if info.Description == "" {
			for i := len(raw.FlavorTextEntries) - 1; i >= 0; i-- {
				e := raw.FlavorTextEntries[i]
				if e.Language.Name == l {
					info.Description = strings.Join(strings.Fields(e.FlavorText), " ")
					break
				}
			}
		}
	}
	return info
}

func languages(lang string) []string {
	if lang == "" || lang == "en" {
		return []string{"en"}
	}
	return []string{lang, "en"}
}

func generationLabel(name string) string {
	rest, ok := strings.CutPrefix(name, "generation-")
	if !ok {
		return Capitalize(name)
	}
	return "Generation " + strings.ToUpper(rest)
}

// imageURL prefers official artwork, then the default front sprite
func imageURL(s catalog.Sprites, placeholder string) string {
	for _, candidate := range []*string{s.Other.OfficialArtwork.FrontDefault, s.FrontDefault} {
		if candidate != nil && *candidate != "" {
			return *candidate
		}
	}
	return placeholder
}

func typeNames(slots []catalog.TypeSlot) []string {
	sorted := make([]catalog.TypeSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Slot < sorted[j].Slot })

	names := make([]string, 0, len(sorted))
	for _, t := range sorted {
		if t.Type.Name != "" {
			names = append(names, t.Type.Name)
		}
	}
	return names
}

// baseStat returns the named stat, or 0 when it is absent
func baseStat(stats []catalog.Stat, name string) int {
	for _, s := range stats {
		if s.Stat.Name == name {
			if s.BaseStat < 0 {
				return 0
			}
			return s.BaseStat
		}
	}
	return 0
}
