package display

import (
	_ "embed"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color definition
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition referencing named colors
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// StylesConfig is the styles file layout
type StylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Theme maps semantic names to lipgloss styles
type Theme map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

// DefaultTheme returns the embedded theme
func DefaultTheme() Theme {
	theme, err := LoadTheme(embeddedStyles)
	if err != nil {
		return Theme{}
	}
	return theme
}

// LoadTheme parses a styles file
func LoadTheme(data []byte) (Theme, error) {
	var cfg StylesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	theme := make(Theme, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style := lipgloss.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
		theme[name] = style
	}
	return theme, nil
}

// Get returns the named style, or an unstyled one
func (t Theme) Get(name string) lipgloss.Style {
	if style, ok := t[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
