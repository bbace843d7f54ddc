package testutil

import (
	"path"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/types"
)

// Entries is a map-backed types.EntryRepository
type Entries map[string]types.Entry

// NewEntries builds a repository from paths. A trailing slash marks a folder.
func NewEntries(paths ...string) Entries {
	e := make(Entries)
	for _, p := range paths {
		e.Add(p)
	}
	return e
}

// Add registers one path, a trailing slash marking a folder
func (e Entries) Add(p string) types.Entry {
	entryType := types.EntryFile
	if strings.HasSuffix(p, "/") {
		entryType = types.EntryFolder
	}
	clean := strings.Trim(p, "/")
	entry := types.Entry{Path: clean, Name: path.Base(clean), Type: entryType}
	e[clean] = entry
	return entry
}

// EntryByPath implements types.EntryRepository
func (e Entries) EntryByPath(p string) (types.Entry, bool) {
	entry, ok := e[p]
	return entry, ok
}
