package display

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/pterm/pterm"
)

// Rules writes rules as a table in the order given
func (p *Printer) Rules(rules []types.Rule) error {
	switch p.format {
	case FormatYAML, FormatTOML:
		return p.encode(struct {
			Rules []types.Rule `yaml:"rules" toml:"rules"`
		}{rules})
	}

	if len(rules) == 0 {
		_, err := fmt.Fprintln(p.w, "No rules configured")
		return err
	}

	if p.format != FormatTerminal {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	data := pterm.TableData{{"Order", "Icon", "For", "Pattern", "Path", "Color"}}
	for _, r := range rules {
		usePath := ""
		if r.UseFilePath {
			usePath = "yes"
		}
		data = append(data, []string{
			strconv.Itoa(r.Order), r.Icon, string(r.For), r.Rule, usePath, r.Color,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, out)
	return err
}

// Line writes a plain message, styled as muted on a terminal
func (p *Printer) Line(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if p.format == FormatTerminal {
		msg = p.theme.Get("Muted").Render(msg)
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}
