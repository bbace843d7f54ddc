// Package registry provides a generic, thread-safe name registry. The icon
// registry stores loaded icons in one, keyed by prefixed icon name.
package registry
