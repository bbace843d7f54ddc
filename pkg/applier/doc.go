// Package applier applies custom icon rules to rendered vault entries.
//
// The Service is the only writer of custom-rule assignments. For every
// (rule, path) pair it follows a fixed order:
//
//  1. skip when the render target already shows an icon, or when the path
//     already resolves to an icon from any source
//  2. skip when the rule is not applicable to the path
//  3. write the assignment to the cache, then render the icon
//
// Because the cache is written before the next pair is considered, a path
// receives at most one custom-rule icon per batch and the first applicable
// rule in sorted order wins.
//
// Misses (unknown entries, absent render targets, icon nodes without an
// owning path) are no-ops for that item; no operation returns an error.
package applier
