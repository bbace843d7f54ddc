// Package rules decides which custom icon rules apply to which vault paths.
//
// A rule applies to a path when all of the following hold:
//
//   - the path resolves to an entry in the vault
//   - the rule's scope (`for`) accepts the entry type
//   - the rule's pattern matches the entry name, or the full path when
//     `use_file_path` is set
//
// # Pattern Conventions
//
// Patterns are regular expressions with ECMAScript syntax:
//
//   - `\.md$` - every markdown file
//   - `^daily/` - everything under daily/ (with use_file_path)
//   - `[draft` - not a valid expression, matched as the substring "[draft"
//
// Compiled patterns are shared through a patterns.Cache, so the same source
// is compiled once per process.
//
// # Rule Order
//
// Rules are sorted ascending by `order` before batch application, ties keeping
// their configured position. The first applicable rule in that order wins: a
// path that already carries an icon is never reassigned by a later rule.
package rules
