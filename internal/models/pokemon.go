package models

// Stats holds the three stats shown on every card
type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// Pokemon is the render-ready projection of one catalog record.
// It is built fresh for every fetch and never modified afterwards.
type Pokemon struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`      // First letter upper-cased
	ImageURL string   `json:"image_url"` // Never empty
	Types    []string `json:"types"`     // 1-2 entries, primary first
	Stats    Stats    `json:"stats"`
}

// PrimaryType returns the representative type, or "" if the record has none
func (p Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}

// SpeciesInfo is the subset of the species record shown on the detail page
type SpeciesInfo struct {
	Genus       string `json:"genus,omitempty"`
	Description string `json:"description,omitempty"`
	Generation  string `json:"generation,omitempty"`
	Habitat     string `json:"habitat,omitempty"`
	Legendary   bool   `json:"legendary"`
	Mythical    bool   `json:"mythical"`
}

// Detail is everything the detail page needs
type Detail struct {
	Pokemon  Pokemon     `json:"pokemon"`
	Species  SpeciesInfo `json:"species"`
	HeightM  float64     `json:"height_m"`
	WeightKg float64     `json:"weight_kg"`
}
