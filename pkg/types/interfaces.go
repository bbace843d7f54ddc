package types

import (
	"github.com/arthur-debert/iconrules/pkg/dom"
)

// EntryRepository resolves vault paths to tree entries
type EntryRepository interface {
	EntryByPath(path string) (Entry, bool)
}

// Icon is a renderable icon object
type Icon interface {
	// Name returns the icon name including its pack prefix
	Name() string

	// Render returns the icon markup
	Render() string

	// WithFontSize returns a copy of the icon sized to px
	WithFontSize(px float64) Icon
}

// IconLookup finds icons by prefixed name
type IconLookup interface {
	IconByName(name string) (Icon, bool)
}

// IconNameResolver reports the icon a path currently resolves to from any
// source, custom rules included
type IconNameResolver interface {
	IconNameForPath(path string) (string, bool)
}

// Container is a registered UI view listing entries. Items maps vault paths
// to the node rendering that entry.
type Container interface {
	Root() *dom.Node
	Items() map[string]*dom.Node
}

// ContainerSource enumerates the currently registered containers
type ContainerSource interface {
	Containers() []Container
}

// IconRenderer draws an icon into the render target of an entry
type IconRenderer interface {
	RenderIcon(target *dom.Node, iconName, color string)
}

// Region is a rendered UI subtree the injection pipeline watches
type Region interface {
	// Root returns the region node, or nil when it is not rendered
	Root() *dom.Node

	// Ready is closed once deferred loading has finished. A nil channel
	// means the region is ready immediately.
	Ready() <-chan struct{}
}
