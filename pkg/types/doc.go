// Package types defines the core data types and collaborator interfaces used
// throughout iconrules. This includes Rule, Entry and Assignment, as well as
// the interfaces the engine consumes from its host: entry lookup, icon lookup,
// render target discovery and icon rendering.
package types
