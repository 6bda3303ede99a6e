package models

// Chip is one coloured type label
type Chip struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatRow is one labelled numeric stat
type StatRow struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Card is a decorated Pokémon, ready for a template or a JSON client
type Card struct {
	ID          int       `json:"id"`
	Badge       string    `json:"badge"` // "#025"
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	AccentColor string    `json:"accent_color"` // light colour of the primary type
	BorderColor string    `json:"border_color"` // dark colour of the primary type
	Chips       []Chip    `json:"chips"`
	Stats       []StatRow `json:"stats"`
	Href        string    `json:"href"`
}
