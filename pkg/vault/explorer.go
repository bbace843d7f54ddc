package vault

import (
	"sort"
	"sync"

	"github.com/arthur-debert/iconrules/pkg/dom"
	"github.com/arthur-debert/iconrules/pkg/types"
)

// Class and attribute names used by the rendered explorer
const (
	ClassContainer = "nav-files-container"
	ClassItem      = "tree-item"
	ClassSelf      = "tree-item-self"
	ClassInner     = "tree-item-inner"
	ClassFile      = "nav-file"
	ClassFolder    = "nav-folder"
	ClassIcon      = "iconize-icon"

	AttrPath = "data-path"
	AttrIcon = "data-icon"
)

// Explorer is a rendered list of vault entries. It is both a container for
// the rule service and a region for the injection pipeline.
type Explorer struct {
	doc       *dom.Document
	root      *dom.Node
	items     map[string]*dom.Node
	ready     chan struct{}
	readyOnce sync.Once
}

// NewExplorer creates an empty explorer region attached to the document
// body, marked with class (ClassContainer when empty). The region reports
// ready once Load has run.
func NewExplorer(doc *dom.Document, class string) *Explorer {
	if class == "" {
		class = ClassContainer
	}
	root := doc.CreateElement("div", class)
	doc.Root().AppendChild(root)
	return &Explorer{
		doc:   doc,
		root:  root,
		items: make(map[string]*dom.Node),
		ready: make(chan struct{}),
	}
}

// Load renders every entry and marks the region ready
func (e *Explorer) Load(entries []types.Entry) {
	for _, entry := range entries {
		e.AddEntry(entry)
	}
	e.readyOnce.Do(func() { close(e.ready) })
}

// Root implements types.Container and types.Region
func (e *Explorer) Root() *dom.Node { return e.root }

// Ready implements types.Region
func (e *Explorer) Ready() <-chan struct{} { return e.ready }

// Items implements types.Container. The returned map is a copy.
func (e *Explorer) Items() map[string]*dom.Node {
	out := make(map[string]*dom.Node, len(e.items))
	for p, n := range e.items {
		out[p] = n
	}
	return out
}

// Paths returns the rendered paths in sorted order
func (e *Explorer) Paths() []string {
	paths := make([]string, 0, len(e.items))
	for p := range e.items {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Target returns the render target of path, or nil
func (e *Explorer) Target(path string) *dom.Node {
	return e.items[path]
}

// AddEntry renders a row for entry and returns its render target. An entry
// already rendered is returned as is.
func (e *Explorer) AddEntry(entry types.Entry) *dom.Node {
	if target, ok := e.items[entry.Path]; ok {
		return target
	}

	kind := ClassFile
	if entry.Type == types.EntryFolder {
		kind = ClassFolder
	}

	self := e.doc.CreateElement("div", ClassSelf)
	self.SetAttr(AttrPath, entry.Path)
	inner := e.doc.CreateElement("div", ClassInner)
	inner.AppendChild(e.doc.CreateText(entry.Name))
	self.AppendChild(inner)

	row := e.doc.CreateElement("div", ClassItem, kind)
	row.AppendChild(self)

	e.items[entry.Path] = self
	e.root.AppendChild(row)
	return self
}

// RemoveEntry removes the row of path
func (e *Explorer) RemoveEntry(path string) {
	self, ok := e.items[path]
	if !ok {
		return
	}
	delete(e.items, path)
	if row := self.Closest(ClassItem); row != nil {
		row.Remove()
	}
}

// Views is the set of registered explorers
type Views []*Explorer

// Containers implements types.ContainerSource
func (v Views) Containers() []types.Container {
	out := make([]types.Container, len(v))
	for i, e := range v {
		out[i] = e
	}
	return out
}
