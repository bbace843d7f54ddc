// Package inject rewrites icon shortcodes in the labels of a rendered
// region and keeps doing so as the host renders new entries.
//
// A Pipeline moves through four states:
//
//	Unregistered -> Registering -> Active -> TornDown
//
// Register waits for the region to finish loading, drops derived caches,
// scans every entry already rendered and only then attaches a subtree
// observer, so no node is processed by both the initial scan and the
// observer. Re-registering disconnects the previous observer first: at most
// one observer is active per region.
//
// Each observed batch first checks whether injection is still enabled. When
// it is not, the observer is disconnected and the rest of the batch is
// dropped. Otherwise an added node carrying the marker class has its own
// label scanned; any other added node has the labels of its marked
// descendants scanned.
package inject
