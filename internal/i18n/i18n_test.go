package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	b, err := New("en")
	require.NoError(t, err)

	tests := []struct {
		name   string
		query  string
		accept string
		want   string
	}{
		{"nothing", "", "", "en"},
		{"query wins", "sv", "en-US,en;q=0.9", "sv"},
		{"accept header", "", "sv-SE,sv;q=0.9,en;q=0.5", "sv"},
		{"regional english", "", "en-GB", "en"},
		{"unknown query falls through to header", "xx-invalid-!!", "sv", "sv"},
		{"unsupported language", "", "ja", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := b.Localizer(b.Match(tt.query, tt.accept))
			assert.Equal(t, tt.want, loc.Lang())
		})
	}
}

func TestNew_SwedishDefault(t *testing.T) {
	b, err := New("sv")
	require.NoError(t, err)

	loc := b.Localizer(b.Match("", ""))
	assert.Equal(t, "sv", loc.Lang())
	assert.Equal(t, "Vänligen ange ett Pokémon-namn", loc.T(KeySearchEmpty))
}

func TestNew_RejectsUnsupportedDefault(t *testing.T) {
	_, err := New("de")
	assert.Error(t, err)

	_, err = New("not a tag")
	assert.Error(t, err)
}

func TestLocalizer_Formats(t *testing.T) {
	b, err := New("en")
	require.NoError(t, err)

	en := b.Localizer(b.Match("en", ""))
	assert.Equal(t, "Pikachu #025 | Pokédex", en.T(KeyDetailTitle, "Pikachu", "025"))
	assert.Equal(t, "Pokémon not found. Check the name and try again.", en.T(KeySearchNotFound))

	sv := b.Localizer(b.Match("sv", ""))
	assert.Equal(t,
		"Upptäck Pikachu, en electric typ Pokémon. Se stats, förmågor och mer information.",
		sv.T(KeyDetailDescription, "Pikachu", "electric"))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range english {
		_, ok := swedish[key]
		assert.True(t, ok, "missing swedish message %s", key)
	}
	for key := range swedish {
		_, ok := english[key]
		assert.True(t, ok, "missing english message %s", key)
	}
}
