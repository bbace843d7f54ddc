package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/paths"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "ICONRULES_"

// LocalConfigFile is looked up in the working directory when no user config
// exists
const LocalConfigFile = ".iconrules.toml"

// LoadOptions controls where Load reads from
type LoadOptions struct {
	// ConfigFile is an explicit config path. It must exist.
	ConfigFile string

	// Overrides are applied last, keyed by dotted path
	// ("injection.enabled").
	Overrides map[string]interface{}
}

// Load builds the settings from every layer and validates them
func Load(opts LoadOptions) (Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	path, err := configFilePath(opts.ConfigFile)
	if err != nil {
		return Settings{}, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Settings{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	settings, err := unmarshal(k)
	if err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	logger.Debug().
		Int("rules", len(settings.Rules)).
		Int("manualIcons", len(settings.ManualIcons)).
		Bool("injection", settings.Injection.Enabled).
		Msg("Configuration loaded")
	return settings, nil
}

// Default returns the embedded default settings
func Default() Settings {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults do not parse: " + err.Error())
	}
	settings, err := unmarshal(k)
	if err != nil {
		panic("embedded defaults do not decode: " + err.Error())
	}
	return settings
}

// UserConfigPath returns the location of the user config file
func UserConfigPath() string {
	return paths.ConfigFilePath()
}

func configFilePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}
	for _, candidate := range []string{UserConfigPath(), LocalConfigFile} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func unmarshal(k *koanf.Koanf) (Settings, error) {
	var settings Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &settings,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				ruleScopeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &settings, unmarshalConf); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	for i := range settings.Rules {
		if settings.Rules[i].For == "" {
			settings.Rules[i].For = types.ScopeEverything
		}
	}
	return settings, nil
}

// ruleScopeHookFunc normalises rule scopes. An empty scope means everything;
// unknown names are kept as is for Validate to report.
func ruleScopeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(types.RuleScope("")) {
			return data, nil
		}
		raw := reflect.ValueOf(data).String()
		scope, err := types.ParseRuleScope(raw)
		if err != nil {
			return types.RuleScope(raw), nil
		}
		return scope, nil
	}
}
