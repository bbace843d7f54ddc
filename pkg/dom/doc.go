// Package dom provides a small in-memory model of a rendered UI tree.
//
// It stands in for the host application's view layer: elements carry a tag,
// CSS-like classes, attributes and children, and a Document delivers batched
// structural mutation records to observers registered on a subtree.
//
// Mutation records are queued synchronously as the tree changes and are only
// delivered when Flush is called, mirroring the way a host batches
// notifications between event-loop turns:
//
//	doc := dom.NewDocument()
//	obs := doc.Observe(region, true, func(records []dom.MutationRecord, o *dom.Observer) {
//		...
//	})
//	region.AppendChild(doc.CreateElement("div", "tree-item"))
//	doc.Flush() // callback runs here
//	obs.Disconnect()
package dom
