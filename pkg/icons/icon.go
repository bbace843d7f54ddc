package icons

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/beevik/etree"
)

// Icon is a single SVG icon
type Icon struct {
	prefix string
	name   string
	svg    string
}

// New parses svg and returns an icon. The markup must have an <svg> root.
func New(prefix, name, svg string) (*Icon, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(svg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIconInvalid, "icon %s%s is not valid XML", prefix, name)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, errors.Newf(errors.ErrIconInvalid, "icon %s%s has no svg root element", prefix, name)
	}
	return &Icon{prefix: prefix, name: name, svg: strings.TrimSpace(svg)}, nil
}

// Name returns the prefixed icon name
func (i *Icon) Name() string { return i.prefix + i.name }

// Prefix returns the icon pack prefix
func (i *Icon) Prefix() string { return i.prefix }

// Render returns the SVG markup
func (i *Icon) Render() string { return i.svg }

// WithFontSize returns a copy of the icon whose width and height are set to
// px. The original icon is returned unchanged if its markup cannot be
// rewritten.
func (i *Icon) WithFontSize(px float64) types.Icon {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(i.svg); err != nil {
		return i
	}
	root := doc.Root()
	size := strconv.FormatFloat(px, 'f', -1, 64) + "px"
	root.CreateAttr("width", size)
	root.CreateAttr("height", size)

	out, err := doc.WriteToString()
	if err != nil {
		return i
	}
	return &Icon{prefix: i.prefix, name: i.name, svg: out}
}

// String implements fmt.Stringer
func (i *Icon) String() string {
	return fmt.Sprintf("Icon(%s)", i.Name())
}

// knownPrefixes pins the prefixes of packs whose names do not follow the
// generic rule
var knownPrefixes = map[string]string{
	"lucide":       "Li",
	"lucide-icons": "Li",
}

// PackPrefix derives the two-letter style prefix of a pack from its name:
// "lucide" becomes "Li" and "remix-icons" becomes "Ri". Other single word
// packs use their first two letters ("feather" becomes "Fe").
func PackPrefix(pack string) string {
	if prefix, ok := knownPrefixes[strings.ToLower(pack)]; ok {
		return prefix
	}

	parts := strings.Split(pack, "-")
	var sb strings.Builder
	first := []rune(parts[0])
	if len(first) == 0 {
		return ""
	}
	sb.WriteRune(unicode.ToUpper(first[0]))

	if len(parts) > 1 {
		for _, part := range parts[1:] {
			r := []rune(part)
			if len(r) > 0 {
				sb.WriteRune(unicode.ToLower(r[0]))
			}
		}
		return sb.String()
	}
	if len(first) > 1 {
		sb.WriteRune(unicode.ToLower(first[1]))
	}
	return sb.String()
}

// NormalizeName turns a file stem such as "arrow-left" or "arrow_left" into
// "ArrowLeft"
func NormalizeName(stem string) string {
	fields := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	var sb strings.Builder
	for _, f := range fields {
		r := []rune(f)
		sb.WriteRune(unicode.ToUpper(r[0]))
		sb.WriteString(string(r[1:]))
	}
	return sb.String()
}
