package shortcode

import (
	"sort"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/dlclark/regexp2"
)

// Pattern builds the shortcode expression for identifier
func Pattern(identifier string) (*regexp2.Regexp, error) {
	if identifier == "" {
		return nil, errors.New(errors.ErrInvalidInput, "shortcode identifier cannot be empty")
	}
	id := regexp2.Escape(identifier)
	re, err := regexp2.Compile(id+`([A-Za-z0-9_-]+?)`+id, regexp2.ECMAScript)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot build shortcode pattern for %q", identifier)
	}
	return re, nil
}

// Name strips the identifier from both ends of token
func Name(token, identifier string) string {
	return strings.TrimSuffix(strings.TrimPrefix(token, identifier), identifier)
}

// Find returns every shortcode in text ordered by start index. A match
// timeout ends the search with the matches found so far.
func Find(re *regexp2.Regexp, identifier, text string) []types.ShortcodeMatch {
	var out []types.ShortcodeMatch
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		token := m.String()
		out = append(out, types.ShortcodeMatch{
			Token: token,
			Name:  Name(token, identifier),
			Index: m.Index,
		})
		m, err = re.FindNextMatch(m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Replacement is a shortcode that resolved to an icon. Start and End are
// rune offsets into the label as it stands once every earlier replacement
// of the same pass has been spliced out.
type Replacement struct {
	Match types.ShortcodeMatch
	Icon  types.Icon
	Start int
	End   int
}

// Plan resolves matches through lookup and computes trim-adjusted spans.
// Matches whose icon is unknown are skipped and do not shift later spans.
func Plan(matches []types.ShortcodeMatch, lookup types.IconLookup) []Replacement {
	var out []Replacement
	trimmed := 0
	for _, m := range matches {
		icon, ok := lookup.IconByName(m.Name)
		if !ok {
			continue
		}
		start := m.Index - trimmed
		out = append(out, Replacement{
			Match: m,
			Icon:  icon,
			Start: start,
			End:   start + m.Len(),
		})
		trimmed += m.Len()
	}
	return out
}

// Segment is a piece of a rewritten label: either text or an icon
type Segment struct {
	Text string
	Icon types.Icon
}

// IsIcon reports whether the segment holds an icon
func (s Segment) IsIcon() bool { return s.Icon != nil }

// Apply splices the planned replacements out of text in order and returns
// the label as text runs with icons at the insertion points.
func Apply(text string, plan []Replacement) []Segment {
	if len(plan) == 0 {
		return []Segment{{Text: text}}
	}

	runes := []rune(text)
	for _, r := range plan {
		runes = append(runes[:r.Start:r.Start], runes[r.End:]...)
	}

	var out []Segment
	prev := 0
	for _, r := range plan {
		if r.Start > prev {
			out = append(out, Segment{Text: string(runes[prev:r.Start])})
		}
		out = append(out, Segment{Icon: r.Icon})
		prev = r.Start
	}
	if prev < len(runes) {
		out = append(out, Segment{Text: string(runes[prev:])})
	}
	return out
}
