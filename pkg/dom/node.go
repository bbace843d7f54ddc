package dom

import (
	"html"
	"sort"
	"strings"
)

// Kind distinguishes element, text and raw markup nodes
type Kind int

const (
	ElementNode Kind = iota
	TextNode
	// RawNode holds pre-rendered markup (an SVG for instance). It renders
	// verbatim and contributes nothing to TextContent.
	RawNode
)

// Node is an element, text or raw markup node in a Document
type Node struct {
	kind     Kind
	tag      string
	data     string
	classes  []string
	attrs    map[string]string
	children []*Node
	parent   *Node
	doc      *Document
}

// Kind returns the node kind
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element tag, empty for text and raw nodes
func (n *Node) Tag() string { return n.tag }

// Data returns the text of a text node or the markup of a raw node
func (n *Node) Data() string { return n.data }

// Document returns the document that created the node
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node or nil when detached
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// HasClass reports whether the element carries the class
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds a class if not already present
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

// Classes returns a copy of the class list
func (n *Node) Classes() []string {
	out := make([]string, len(n.classes))
	copy(out, n.classes)
	return out
}

// Attr returns an attribute value
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute value
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// AppendChild attaches child as the last child of n, detaching it from its
// previous parent first
func (n *Node) AppendChild(child *Node) {
	n.insertAt(len(n.children), child)
}

// Prepend attaches child as the first child of n
func (n *Node) Prepend(child *Node) {
	n.insertAt(0, child)
}

func (n *Node) insertAt(index int, child *Node) {
	if child.parent != nil {
		child.Remove()
	}
	if index > len(n.children) {
		index = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	n.doc.record(n, []*Node{child}, nil)
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	p.doc.record(p, nil, []*Node{n})
}

// SetChildren replaces every child of n, producing a single mutation record
func (n *Node) SetChildren(children ...*Node) {
	removed := n.children
	for _, c := range removed {
		c.parent = nil
	}
	n.children = nil
	for _, c := range children {
		if c.parent != nil {
			c.Remove()
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	added := make([]*Node, len(children))
	copy(added, children)
	n.doc.record(n, added, removed)
}

// SetText replaces the children of n with a single text node
func (n *Node) SetText(text string) {
	n.SetChildren(n.doc.CreateText(text))
}

// TextContent concatenates the text of every descendant text node
func (n *Node) TextContent() string {
	if n.kind == TextNode {
		return n.data
	}
	var sb strings.Builder
	n.walk(func(d *Node) bool {
		if d.kind == TextNode {
			sb.WriteString(d.data)
		}
		return true
	})
	return sb.String()
}

// QueryAll returns every descendant element (n excluded) carrying the class,
// in document order
func (n *Node) QueryAll(class string) []*Node {
	var out []*Node
	for _, c := range n.children {
		c.walk(func(d *Node) bool {
			if d.kind == ElementNode && d.HasClass(class) {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// Query returns the first descendant element carrying the class
func (n *Node) Query(class string) *Node {
	var found *Node
	for _, c := range n.children {
		c.walk(func(d *Node) bool {
			if found == nil && d.kind == ElementNode && d.HasClass(class) {
				found = d
			}
			return found == nil
		})
		if found != nil {
			break
		}
	}
	return found
}

// Closest returns n or its nearest ancestor carrying the class
func (n *Node) Closest(class string) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.kind == ElementNode && cur.HasClass(class) {
			return cur
		}
	}
	return nil
}

// Contains reports whether other is n or one of its descendants
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// walk visits n and its descendants depth first until fn returns false
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// HTML renders the node and its subtree as markup
func (n *Node) HTML() string {
	var sb strings.Builder
	n.render(&sb)
	return sb.String()
}

// InnerHTML renders only the children of n
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, c := range n.children {
		c.render(&sb)
	}
	return sb.String()
}

func (n *Node) render(sb *strings.Builder) {
	switch n.kind {
	case TextNode:
		sb.WriteString(html.EscapeString(n.data))
		return
	case RawNode:
		sb.WriteString(n.data)
		return
	}

	sb.WriteString("<")
	sb.WriteString(n.tag)
	if len(n.classes) > 0 {
		sb.WriteString(` class="`)
		sb.WriteString(html.EscapeString(strings.Join(n.classes, " ")))
		sb.WriteString(`"`)
	}
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(n.attrs[name]))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	for _, c := range n.children {
		c.render(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteString(">")
}
