package rules

import (
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/types"
)

// ValidateRules checks that every rule names an icon, has a pattern and a
// known scope. Pattern syntax is deliberately not checked: a pattern that
// does not compile is matched as a substring.
func ValidateRules(rules []types.Rule) error {
	for i, rule := range rules {
		if strings.TrimSpace(rule.Rule) == "" {
			return errors.Newf(errors.ErrRuleInvalid, "rule %d has empty pattern", i).
				WithDetail("index", i)
		}
		if strings.TrimSpace(rule.Icon) == "" {
			return errors.Newf(errors.ErrRuleInvalid, "rule %d has empty icon", i).
				WithDetail("index", i).
				WithDetail("rule", rule.Rule)
		}
		if !rule.For.Valid() {
			return errors.Newf(errors.ErrRuleInvalid, "rule %d has unknown scope %q", i, rule.For).
				WithDetail("index", i).
				WithDetail("rule", rule.Rule)
		}
	}
	return nil
}
