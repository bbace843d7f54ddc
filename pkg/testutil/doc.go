// Package testutil provides fixtures for testing iconrules components.
//
// Key components:
//   - Entries: a map-backed EntryRepository for pure matching tests
//   - TestEnvironment: an in-memory vault (afero MemMapFs), a dom document
//     with a loaded explorer, an icon registry and an assignment cache
//
// All test data is defined inline; nothing touches the real filesystem.
package testutil
