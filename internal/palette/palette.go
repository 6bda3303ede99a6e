// Package palette maps Pokémon types to display colours.
//
// There are two parallel tables: Light (chips, image rings, id badges) and
// Dark (card borders and backgrounds). Both are closed enumerations over the
// 18 known types with one fallback colour each, built once at start-up and
// injected where needed. Lookups never fail.
package palette

// Palette selects one of the two colour tables
type Palette int

const (
	Light Palette = iota
	Dark
)

func (p Palette) String() string {
	if p == Dark {
		return "dark"
	}
	return "light"
}

// Fallback colours for types outside the table
const (
	LightFallback = "#A8A8A8"
	DarkFallback  = "#9E9E9E"
)

// KnownTypes lists the 18 types every table covers
var KnownTypes = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

var defaultLight = map[string]string{
	"fire":     "#FF6B6B",
	"water":    "#4ECDC4",
	"electric": "#FFD93D",
	"grass":    "#6BCF7F",
	"ice":      "#74C0FC",
	"fighting": "#FF8787",
	"poison":   "#DA77F2",
	"ground":   "#FECA57",
	"flying":   "#74C0FC",
	"psychic":  "#FDA7DF",
	"bug":      "#82ca9d",
	"rock":     "#FDCB6E",
	"ghost":    "#A29BFE",
	"dragon":   "#6C5CE7",
	"dark":     "#636e72",
	"steel":    "#ddd",
	"fairy":    "#FD79A8",
	"normal":   "#A8A8A8",
}

var defaultDark = map[string]string{
	"fire":     "#FF5722",
	"water":    "#2196F3",
	"electric": "#FFC107",
	"grass":    "#4CAF50",
	"ice":      "#03A9F4",
	"fighting": "#F44336",
	"poison":   "#9C27B0",
	"ground":   "#795548",
	"flying":   "#607D8B",
	"psychic":  "#E91E63",
	"bug":      "#8BC34A",
	"rock":     "#FF9800",
	"ghost":    "#673AB7",
	"dragon":   "#3F51B5",
	"dark":     "#424242",
	"steel":    "#9E9E9E",
	"fairy":    "#E91E63",
	"normal":   "#9E9E9E",
}

// Table is an immutable type -> colour mapping with a fallback
type Table struct {
	colors   map[string]string
	fallback string
}

// NewTable copies colors so later changes to the map do not leak in
func NewTable(colors map[string]string, fallback string) Table {
	c := make(map[string]string, len(colors))
	for k, v := range colors {
		c[k] = v
	}
	return Table{colors: c, fallback: fallback}
}

// Color returns the colour for category, or the fallback. Categories are
// matched exactly: catalog type names are lower-case, anything else is unknown.
func (t Table) Color(category string) string {
	if c, ok := t.colors[category]; ok {
		return c
	}
	return t.fallback
}

// Set bundles the light and dark tables
type Set struct {
	Light Table
	Dark  Table
}

// Default returns the stock colour tables
func Default() Set {
	return Set{
		Light: NewTable(defaultLight, LightFallback),
		Dark:  NewTable(defaultDark, DarkFallback),
	}
}

// ColorFor looks category up in the selected palette
func (s Set) ColorFor(category string, p Palette) string {
	if p == Dark {
		return s.Dark.Color(category)
	}
	return s.Light.Color(category)
}
