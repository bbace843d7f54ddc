package rules

import (
	"sort"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/patterns"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/rs/zerolog"
)

// Engine matches rules against vault paths
type Engine struct {
	patterns *patterns.Cache
	entries  types.EntryRepository
	logger   zerolog.Logger
}

// NewEngine creates a matching engine. Entry types are looked up through
// entries; the engine never touches storage itself.
func NewEngine(cache *patterns.Cache, entries types.EntryRepository) *Engine {
	return &Engine{
		patterns: cache,
		entries:  entries,
		logger:   logging.GetLogger("rules.engine"),
	}
}

// MatchesType reports whether the rule's scope accepts the entry type
func MatchesType(rule types.Rule, entryType types.EntryType) bool {
	switch rule.For {
	case types.ScopeEverything:
		return true
	case types.ScopeFiles:
		return entryType == types.EntryFile
	case types.ScopeFolders:
		return entryType == types.EntryFolder
	default:
		return false
	}
}

// Subject returns the string a rule pattern is tested against: the full
// path, or only its final segment
func Subject(rule types.Rule, path string) string {
	if rule.UseFilePath {
		return path
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// MatchesPath reports whether the rule's pattern matches the path
func (e *Engine) MatchesPath(rule types.Rule, path string) bool {
	return e.patterns.Resolve(rule.Rule).Match(Subject(rule, path))
}

// EntryType returns the type of the entry at path
func (e *Engine) EntryType(path string) (types.EntryType, bool) {
	entry, ok := e.entries.EntryByPath(path)
	if !ok {
		return 0, false
	}
	return entry.Type, true
}

// IsApplicable reports whether the rule applies to the entry at path. A path
// that does not resolve to an entry never matches.
func (e *Engine) IsApplicable(rule types.Rule, path string) bool {
	entryType, ok := e.EntryType(path)
	if !ok {
		e.logger.Debug().Str("path", path).Msg("Entry not found, rule not applicable")
		return false
	}
	return MatchesType(rule, entryType) && e.MatchesPath(rule, path)
}

// FirstMatch returns the first rule in sorted order that applies to path
func (e *Engine) FirstMatch(rules []types.Rule, path string) (types.Rule, bool) {
	for _, rule := range SortRules(rules) {
		if e.IsApplicable(rule, path) {
			e.logger.Trace().
				Str("path", path).
				Str("rule", rule.Rule).
				Str("icon", rule.Icon).
				Msg("Path matched rule")
			return rule, true
		}
	}
	return types.Rule{}, false
}

// SortRules returns a copy of rules sorted ascending by Order. Rules with the
// same order keep their relative position.
func SortRules(rules []types.Rule) []types.Rule {
	sorted := make([]types.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
