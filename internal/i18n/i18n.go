// Package i18n holds the user-facing strings in English and Swedish and picks
// the language for a request.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	KeyAppName            = "app.name"
	KeyHomeTitle          = "home.title"
	KeyHomeSubtitle       = "home.subtitle"
	KeyRandomButton       = "home.random"
	KeyLoading            = "home.loading"
	KeyFeaturedHeading    = "home.featured"
	KeySearchPlaceholder  = "search.placeholder"
	KeySearchButton       = "search.button"
	KeySearchEmpty        = "search.empty"
	KeySearchNotFound     = "search.not_found"
	KeyLookupFailed       = "lookup.failed"
	KeyFeaturedFailed     = "featured.failed"
	KeyCatalogUnavailable = "catalog.unavailable"
	KeyDetailHeading      = "detail.heading"
	KeyDetailBack         = "detail.back"
	KeyDetailTitle        = "detail.title"
	KeyDetailDescription  = "detail.description"
	KeyDetailNotFound     = "detail.not_found"
	KeyNotFoundTitle      = "detail.not_found.title"
	KeyNotFoundText       = "detail.not_found.text"
	KeyHeight             = "detail.height"
	KeyWeight             = "detail.weight"
	KeyGeneration         = "detail.generation"
	KeyHabitat            = "detail.habitat"
	KeyLegendary          = "detail.legendary"
	KeyMythical           = "detail.mythical"
	KeyFooterTagline      = "footer.tagline"
)

var english = map[string]string{
	KeyAppName:            "Pokédex",
	KeyHomeTitle:          "Gotta catch 'em all!",
	KeyHomeSubtitle:       "Discover, search and explore the amazing world of Pokémon. Find your favourites and learn about their stats.",
	KeyRandomButton:       "Random Pokémon",
	KeyLoading:            "Loading...",
	KeyFeaturedHeading:    "Featured Pokémon",
	KeySearchPlaceholder:  "Search for a Pokémon...",
	KeySearchButton:       "Search Pokémon",
	KeySearchEmpty:        "Please enter a Pokémon name",
	KeySearchNotFound:     "Pokémon not found. Check the name and try again.",
	KeyLookupFailed:       "Could not fetch a Pokémon. Try again.",
	KeyFeaturedFailed:     "Featured Pokémon are unavailable right now.",
	KeyCatalogUnavailable: "The Pokédex service is unavailable right now.",
	KeyDetailHeading:      "Pokémon details",
	KeyDetailBack:         "← Back to start",
	KeyDetailTitle:        "%s #%s | Pokédex",
	KeyDetailDescription:  "Discover %s, a %s type Pokémon. See stats, abilities and more.",
	KeyDetailNotFound:     "Pokémon not found",
	KeyNotFoundTitle:      "Pokémon Not Found | Pokédex",
	KeyNotFoundText:       "The requested Pokémon could not be found.",
	KeyHeight:             "Height",
	KeyWeight:             "Weight",
	KeyGeneration:         "Generation",
	KeyHabitat:            "Habitat",
	KeyLegendary:          "Legendary",
	KeyMythical:           "Mythical",
	KeyFooterTagline:      "Explore the world of Pokémon",
}

var swedish = map[string]string{
	KeyAppName:            "Pokédex",
	KeyHomeTitle:          "Gotta catch 'em all!",
	KeyHomeSubtitle:       "Upptäck, sök och utforska Pokémons fantastiska värld. Hitta dina favoriter och lär dig om deras statistik.",
	KeyRandomButton:       "Slumpmässig Pokémon",
	KeyLoading:            "Laddar...",
	KeyFeaturedHeading:    "Utvalda Pokémon",
	KeySearchPlaceholder:  "Sök efter en Pokémon...",
	KeySearchButton:       "Sök Pokémon",
	KeySearchEmpty:        "Vänligen ange ett Pokémon-namn",
	KeySearchNotFound:     "Pokémon hittades inte. Kontrollera namnet och försök igen.",
	KeyLookupFailed:       "Misslyckades att hämta Pokémon. Försök igen.",
	KeyFeaturedFailed:     "Utvalda Pokémon kunde inte hämtas just nu.",
	KeyCatalogUnavailable: "Pokédex-tjänsten är inte tillgänglig just nu.",
	KeyDetailHeading:      "Pokémon Detaljer",
	KeyDetailBack:         "← Tillbaka till Start",
	KeyDetailTitle:        "%s #%s | Pokédex",
	KeyDetailDescription:  "Upptäck %s, en %s typ Pokémon. Se stats, förmågor och mer information.",
	KeyDetailNotFound:     "Pokémon hittades inte",
	KeyNotFoundTitle:      "Pokémon hittades inte | Pokédex",
	KeyNotFoundText:       "Den begärda Pokémonen kunde inte hittas.",
	KeyHeight:             "Längd",
	KeyWeight:             "Vikt",
	KeyGeneration:         "Generation",
	KeyHabitat:            "Habitat",
	KeyLegendary:          "Legendarisk",
	KeyMythical:           "Mytisk",
	KeyFooterTagline:      "Utforska Pokémons värld",
}

// Bundle is the message catalog plus the language matcher. Safe for concurrent use.
type Bundle struct {
	catalog   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// New builds the bundle. defaultLang is used when nothing in a request matches.
func New(defaultLang string) (*Bundle, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("parsing default language %q: %w", defaultLang, err)
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range map[language.Tag]map[string]string{
		language.English: english,
		language.Swedish: swedish,
	} {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("registering %s/%s: %w", tag, key, err)
			}
		}
	}

	supported := []language.Tag{language.English, language.Swedish}
	switch base, _ := def.Base(); base.String() {
	case "en":
	case "sv":
		supported = []language.Tag{language.Swedish, language.English}
	default:
		return nil, fmt.Errorf("unsupported default language %q", defaultLang)
	}

	return &Bundle{
		catalog:   b,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Match picks the language for a request. An explicit query value wins over
// the Accept-Language header; anything unknown gives the default.
func (b *Bundle) Match(query, acceptLanguage string) language.Tag {
	if q := strings.TrimSpace(query); q != "" {
		if tag, err := language.Parse(q); err == nil {
			if _, idx, conf := b.matcher.Match(tag); conf != language.No {
				return b.supported[idx]
			}
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			if _, idx, conf := b.matcher.Match(tags...); conf != language.No {
				return b.supported[idx]
			}
		}
	}
	return b.supported[0]
}

// Localizer returns a printer for tag
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.catalog)),
	}
}

// Localizer formats messages in one language
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// T formats the message stored under key
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Lang is the base language code, e.g. "sv"
func (l *Localizer) Lang() string {
	base, _ := l.tag.Base()
	return base.String()
}
