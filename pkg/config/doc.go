// Package config loads iconrules settings.
//
// Settings are layered, each source overriding the previous one:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file: an explicit path, else
//     $XDG_CONFIG_HOME/iconrules/config.toml, else ./.iconrules.toml
//  3. environment variables prefixed ICONRULES_, with "__" separating
//     nested keys (ICONRULES_INJECTION__ENABLED=false)
//  4. programmatic overrides, used for command line flags
//
// The core packages only ever read settings; a Store hands out the current
// values and lets the host swap them when the user edits the configuration.
package config
