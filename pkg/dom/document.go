package dom

import "sync"

// MutationRecord describes one structural change to a target node
type MutationRecord struct {
	Target  *Node
	Added   []*Node
	Removed []*Node
}

// ObserverFunc receives a batch of records for one observer
type ObserverFunc func(records []MutationRecord, observer *Observer)

// Observer watches a target node, optionally including its whole subtree
type Observer struct {
	doc      *Document
	target   *Node
	subtree  bool
	callback ObserverFunc
	pending  []MutationRecord
	active   bool
}

// Disconnect stops the observer and drops any undelivered records.
// Calling it more than once is safe.
func (o *Observer) Disconnect() {
	o.doc.mu.Lock()
	defer o.doc.mu.Unlock()

	if !o.active {
		return
	}
	o.active = false
	o.pending = nil
	for i, other := range o.doc.observers {
		if other == o {
			o.doc.observers = append(o.doc.observers[:i], o.doc.observers[i+1:]...)
			break
		}
	}
}

// Active reports whether the observer is still connected
func (o *Observer) Active() bool {
	o.doc.mu.Lock()
	defer o.doc.mu.Unlock()
	return o.active
}

// Target returns the observed node
func (o *Observer) Target() *Node { return o.target }

// Document owns a tree of nodes and the observers watching it
type Document struct {
	mu        sync.Mutex
	root      *Node
	observers []*Observer
}

// NewDocument creates a document with an empty body element as root
func NewDocument() *Document {
	d := &Document{}
	d.root = d.CreateElement("body")
	return d
}

// Root returns the document body
func (d *Document) Root() *Node { return d.root }

// CreateElement creates a detached element
func (d *Document) CreateElement(tag string, classes ...string) *Node {
	n := &Node{kind: ElementNode, tag: tag, doc: d}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// CreateText creates a detached text node
func (d *Document) CreateText(text string) *Node {
	return &Node{kind: TextNode, data: text, doc: d}
}

// CreateRaw creates a detached node that renders markup verbatim
func (d *Document) CreateRaw(markup string) *Node {
	return &Node{kind: RawNode, data: markup, doc: d}
}

// Observe registers fn for structural changes on target. With subtree set,
// changes anywhere below target are reported too.
func (d *Document) Observe(target *Node, subtree bool, fn ObserverFunc) *Observer {
	d.mu.Lock()
	defer d.mu.Unlock()

	o := &Observer{
		doc:      d,
		target:   target,
		subtree:  subtree,
		callback: fn,
		active:   true,
	}
	d.observers = append(d.observers, o)
	return o
}

// ObserverCount returns the number of connected observers
func (d *Document) ObserverCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.observers)
}

func (d *Document) record(target *Node, added, removed []*Node) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, o := range d.observers {
		if o.target == target || (o.subtree && o.target.Contains(target)) {
			o.pending = append(o.pending, MutationRecord{
				Target:  target,
				Added:   added,
				Removed: removed,
			})
		}
	}
}

// Flush delivers every queued record, one batch per observer, and returns
// the number of records delivered. Records produced by the callbacks are
// queued for the next Flush.
func (d *Document) Flush() int {
	d.mu.Lock()
	type delivery struct {
		observer *Observer
		records  []MutationRecord
	}
	var batch []delivery
	for _, o := range d.observers {
		if len(o.pending) == 0 {
			continue
		}
		batch = append(batch, delivery{observer: o, records: o.pending})
		o.pending = nil
	}
	d.mu.Unlock()

	delivered := 0
	for _, b := range batch {
		if !b.observer.Active() {
			continue
		}
		delivered += len(b.records)
		b.observer.callback(b.records, b.observer)
	}
	return delivered
}
