package config

import (
	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/rules"
	"github.com/arthur-debert/iconrules/pkg/types"
)

// Settings is the complete user configuration
type Settings struct {
	IconIdentifier string       `koanf:"icon_identifier" toml:"icon_identifier" yaml:"icon_identifier"`
	Rules          []types.Rule `koanf:"rules" toml:"rules" yaml:"rules"`
	ManualIcons    []ManualIcon `koanf:"manual_icons" toml:"manual_icons" yaml:"manual_icons"`
	Injection      Injection    `koanf:"injection" toml:"injection" yaml:"injection"`
	Icons          Icons        `koanf:"icons" toml:"icons" yaml:"icons"`
}

// ManualIcon is an icon set by hand on one path
type ManualIcon struct {
	Path string `koanf:"path" toml:"path" yaml:"path"`
	Icon string `koanf:"icon" toml:"icon" yaml:"icon"`
}

// Injection configures label shortcode injection
type Injection struct {
	Enabled         bool    `koanf:"enabled" toml:"enabled" yaml:"enabled"`
	Region          string  `koanf:"region" toml:"region" yaml:"region"`
	MarkerClass     string  `koanf:"marker_class" toml:"marker_class" yaml:"marker_class"`
	LabelClass      string  `koanf:"label_class" toml:"label_class" yaml:"label_class"`
	DefaultFontSize float64 `koanf:"default_font_size" toml:"default_font_size" yaml:"default_font_size"`
}

// Icons configures where icon packs are loaded from
type Icons struct {
	Dir string `koanf:"dir" toml:"dir" yaml:"dir"`
}

// ManualIconMap returns the manual icons keyed by path. Later entries for
// the same path win.
func (s Settings) ManualIconMap() map[string]string {
	out := make(map[string]string, len(s.ManualIcons))
	for _, m := range s.ManualIcons {
		out[m.Path] = m.Icon
	}
	return out
}

// Validate checks the settings. Rule patterns that do not compile are
// accepted; they match as substrings.
func (s Settings) Validate() error {
	if s.IconIdentifier == "" {
		return errors.New(errors.ErrConfigValid, "icon_identifier cannot be empty")
	}
	if err := rules.ValidateRules(s.Rules); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid rules")
	}
	for i, m := range s.ManualIcons {
		if m.Path == "" || m.Icon == "" {
			return errors.Newf(errors.ErrConfigValid, "manual icon %d needs both path and icon", i).
				WithDetail("index", i)
		}
	}
	if s.Injection.DefaultFontSize < 0 {
		return errors.New(errors.ErrConfigValid, "injection.default_font_size cannot be negative")
	}
	return nil
}
