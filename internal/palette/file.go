package palette

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type colorPair struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

type paletteFile struct {
	Fallback colorPair            `yaml:"fallback"`
	Types    map[string]colorPair `yaml:"types"`
}

// LoadFile reads colour overrides from a YAML file and layers them over the
// defaults:
//
//	fallback:
//	  light: "#A8A8A8"
//	  dark: "#9E9E9E"
//	types:
//	  fire: {light: "#FF6B6B", dark: "#FF5722"}
//
// Omitted entries keep their default colour.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading palette file: %w", err)
	}
	return Parse(data)
}

// Parse is LoadFile for in-memory YAML
func Parse(data []byte) (Set, error) {
	var f paletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Set{}, fmt.Errorf("parsing palette: %w", err)
	}

	light := copyMap(defaultLight)
	dark := copyMap(defaultDark)
	lightFallback, darkFallback := LightFallback, DarkFallback

	if err := override(&lightFallback, f.Fallback.Light, "fallback.light"); err != nil {
		return Set{}, err
	}
	if err := override(&darkFallback, f.Fallback.Dark, "fallback.dark"); err != nil {
		return Set{}, err
	}

	for name, pair := range f.Types {
		l, d := light[name], dark[name]
		if err := override(&l, pair.Light, "types."+name+".light"); err != nil {
			return Set{}, err
		}
		if err := override(&d, pair.Dark, "types."+name+".dark"); err != nil {
			return Set{}, err
		}
		if l == "" {
			l = lightFallback
		}
		if d == "" {
			d = darkFallback
		}
		light[name], dark[name] = l, d
	}

	return Set{
		Light: NewTable(light, lightFallback),
		Dark:  NewTable(dark, darkFallback),
	}, nil
}

func override(dst *string, value, field string) error {
	if value == "" {
		return nil
	}
	if !hexColor.MatchString(value) {
		return fmt.Errorf("palette %s: %q is not a hex colour", field, value)
	}
	*dst = value
	return nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
