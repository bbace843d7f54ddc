package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Row is one vault entry and the icon it shows
type Row struct {
	Path   string `yaml:"path" toml:"path"`
	Folder bool   `yaml:"folder" toml:"folder"`
	Icon   string `yaml:"icon,omitempty" toml:"icon,omitempty"`
	Color  string `yaml:"color,omitempty" toml:"color,omitempty"`
	Rule   string `yaml:"rule,omitempty" toml:"rule,omitempty"`
}

// RowFromEntry builds a row without an icon
func RowFromEntry(e types.Entry) Row {
	return Row{Path: e.Path, Folder: e.Type == types.EntryFolder}
}

// Printer writes rows and rules in one format
type Printer struct {
	w      io.Writer
	format Format
	theme  Theme
}

// NewPrinter creates a printer. FormatAuto is treated as text; callers
// resolve it against their output first.
func NewPrinter(w io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Printer{w: w, format: format, theme: DefaultTheme()}
}

// Tree writes rows as an indented tree, rows being in path order
func (p *Printer) Tree(rows []Row) error {
	switch p.format {
	case FormatYAML, FormatTOML:
		return p.encode(struct {
			Entries []Row `yaml:"entries" toml:"entries"`
		}{rows})
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(p.w, p.treeLine(row)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) treeLine(row Row) string {
	depth := strings.Count(row.Path, "/")
	name := row.Path[strings.LastIndex(row.Path, "/")+1:]
	if row.Folder {
		name += "/"
	}

	styled := p.format == FormatTerminal
	if styled {
		if row.Folder {
			name = p.theme.Get("Folder").Render(name)
		} else {
			name = p.theme.Get("File").Render(name)
		}
	}

	line := strings.Repeat("  ", depth) + name
	if row.Icon == "" {
		return line
	}

	icon := "[" + row.Icon + "]"
	rule := ""
	if row.Rule != "" {
		rule = " " + row.Rule
	}
	if styled {
		icon = p.theme.Get("Icon").Render(icon)
		rule = p.theme.Get("Rule").Render(rule)
	}
	return line + " " + icon + rule
}

func (p *Printer) encode(v interface{}) error {
	var (
		out []byte
		err error
	)
	if p.format == FormatTOML {
		out, err = toml.Marshal(v)
	} else {
		out, err = yaml.Marshal(v)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot encode output as %s", p.format)
	}
	_, err = p.w.Write(out)
	return err
}
