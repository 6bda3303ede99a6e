// Package termcard renders a Pokémon card for the terminal.
package termcard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meur/pokedex/internal/models"
)

const cardWidth = 36

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("241"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// RenderDetail draws the card plus the species section of the detail page
// inside a rounded border coloured like the primary type
func RenderDetail(card models.Card, detail models.Detail) string {
	sections := []string{body(card), ""}

	sp := detail.Species
	if sp.Genus != "" {
		sections = append(sections, mutedStyle.Render(sp.Genus))
	}
	sections = append(sections,
		row("Height", fmt.Sprintf("%.1f m", detail.HeightM)),
		row("Weight", fmt.Sprintf("%.1f kg", detail.WeightKg)),
	)
	if sp.Generation != "" {
		sections = append(sections, row("Gen", sp.Generation))
	}
	if sp.Habitat != "" {
		sections = append(sections, row("Habitat", sp.Habitat))
	}
	if sp.Legendary {
		sections = append(sections, valueStyle.Render("★ Legendary"))
	}
	if sp.Mythical {
		sections = append(sections, valueStyle.Render("✦ Mythical"))
	}
	if sp.Description != "" {
		sections = append(sections, "", lipgloss.NewStyle().Width(cardWidth-4).Render(sp.Description))
	}

	return box(card).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func box(card models.Card) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(card.BorderColor)).
		Padding(0, 1).
		Width(cardWidth)
}

func body(card models.Card) string {
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(card.AccentColor)).
		Padding(0, 1).
		Render(card.Badge)

	chips := make([]string, 0, len(card.Chips))
	for _, c := range card.Chips {
		chips = append(chips, lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(c.Color)).
			Padding(0, 1).
			Render(c.Label))
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", nameStyle.Render(card.Name)),
		strings.Join(chips, " "),
	}
	for _, s := range card.Stats {
		lines = append(lines, row(s.Label, fmt.Sprintf("%d", s.Value)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
