package config

import (
	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Export renders settings in the given format
func Export(s Settings, format string) ([]byte, error) {
	switch format {
	case FormatTOML, "":
		out, err := toml.Marshal(s)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode settings as toml")
		}
		return out, nil
	case FormatYAML:
		out, err := yaml.Marshal(s)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode settings as yaml")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown export format %q", format).
			WithDetail("format", format)
	}
}
