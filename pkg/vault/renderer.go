package vault

import (
	"github.com/arthur-debert/iconrules/pkg/dom"
	"github.com/arthur-debert/iconrules/pkg/types"
)

// RowRenderer draws rule icons into explorer rows. The icon node is
// prepended to the render target and tagged with the icon name.
type RowRenderer struct {
	Icons    types.IconLookup
	FontSize float64
}

// RenderIcon implements types.IconRenderer
func (r RowRenderer) RenderIcon(target *dom.Node, iconName, color string) {
	doc := target.Document()
	node := doc.CreateElement("div", ClassIcon)
	node.SetAttr(AttrIcon, iconName)
	if color != "" {
		node.SetAttr("style", "color: "+color)
	}

	if r.Icons != nil {
		if icon, ok := r.Icons.IconByName(iconName); ok {
			if r.FontSize > 0 {
				icon = icon.WithFontSize(r.FontSize)
			}
			node.AppendChild(doc.CreateRaw(icon.Render()))
		}
	}

	target.Prepend(node)
}
