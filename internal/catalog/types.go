package catalog

// NamedResource is the {name, url} pair the catalog uses for every reference
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Stat is one entry of a Pokémon's stats array
type Stat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// TypeSlot is one entry of a Pokémon's types array; slot 1 is the primary type
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// Artwork is a front-facing image pair used by the nested sprite variants
type Artwork struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}

// OtherSprites holds the high-quality artwork variants
type OtherSprites struct {
	OfficialArtwork Artwork `json:"official-artwork"`
	Home            Artwork `json:"home"`
	DreamWorld      Artwork `json:"dream_world"`
}

// Sprites is the image-URL bag of a Pokémon record
type Sprites struct {
	FrontDefault *string      `json:"front_default"`
	FrontShiny   *string      `json:"front_shiny"`
	BackDefault  *string      `json:"back_default"`
	Other        OtherSprites `json:"other"`
}

// Pokemon is the raw record returned by GET /pokemon/{idOrName}
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	BaseExperience int           `json:"base_experience"`
	Height         int           `json:"height"` // decimetres
	Weight         int           `json:"weight"` // hectograms
	Order          int           `json:"order"`
	IsDefault      bool          `json:"is_default"`
	Species        NamedResource `json:"species"`
	Sprites        Sprites       `json:"sprites"`
	Stats          []Stat        `json:"stats"`
	Types          []TypeSlot    `json:"types"`
}

// Genus is a localized category label such as "Mouse Pokémon"
type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

// FlavorText is a localized description taken from one game version
type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// Species is the extended record reached through Pokemon.Species.URL
type Species struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	CaptureRate        int            `json:"capture_rate"`
	BaseHappiness      int            `json:"base_happiness"`
	IsBaby             bool           `json:"is_baby"`
	IsLegendary        bool           `json:"is_legendary"`
	IsMythical         bool           `json:"is_mythical"`
	Color              NamedResource  `json:"color"`
	Generation         NamedResource  `json:"generation"`
	Habitat            *NamedResource `json:"habitat"`
	EvolvesFromSpecies *NamedResource `json:"evolves_from_species"`
	Genera             []Genus        `json:"genera"`
	FlavorTextEntries  []FlavorText   `json:"flavor_text_entries"`
}
