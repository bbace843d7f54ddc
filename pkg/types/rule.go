package types

import (
	"fmt"
	"strings"
)

// RuleScope restricts a rule to files, folders, or both
type RuleScope string

const (
	ScopeEverything RuleScope = "everything"
	ScopeFiles      RuleScope = "files"
	ScopeFolders    RuleScope = "folders"
)

// ParseRuleScope parses a scope name. An empty string means everything.
func ParseRuleScope(s string) (RuleScope, error) {
	switch RuleScope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeEverything, "":
		return ScopeEverything, nil
	case ScopeFiles:
		return ScopeFiles, nil
	case ScopeFolders:
		return ScopeFolders, nil
	default:
		return "", fmt.Errorf("unknown rule scope: %q", s)
	}
}

// Valid reports whether s is one of the known scopes
func (s RuleScope) Valid() bool {
	return s == ScopeEverything || s == ScopeFiles || s == ScopeFolders
}

// Rule assigns an icon to every entry whose name (or full path) matches a
// pattern. Rules are user-owned and treated as read-only input.
type Rule struct {
	// Icon is the icon name including its pack prefix, e.g. "LiStar"
	Icon string `koanf:"icon" toml:"icon" yaml:"icon" json:"icon"`

	// Color is an optional CSS color for the rendered icon
	Color string `koanf:"color" toml:"color,omitempty" yaml:"color,omitempty" json:"color,omitempty"`

	// For restricts the rule to files, folders or everything
	For RuleScope `koanf:"for" toml:"for" yaml:"for" json:"for"`

	// Rule is the pattern source. It is compiled as a regular expression;
	// when that fails it is matched as a plain substring.
	Rule string `koanf:"rule" toml:"rule" yaml:"rule" json:"rule"`

	// UseFilePath matches against the full vault path instead of the
	// entry name
	UseFilePath bool `koanf:"use_file_path" toml:"use_file_path" yaml:"use_file_path" json:"useFilePath"`

	// Order sorts rules ascending before batch application
	Order int `koanf:"order" toml:"order" yaml:"order" json:"order"`
}

// String returns a short description used in logs and CLI output
func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s (%s)", r.Rule, r.Icon, r.For)
}
