package core

import (
	"strings"

	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/rs/zerolog"
)

// HandleCreate implements vault.EventHandler
func (a *App) HandleCreate(path string) {
	logger := a.eventLogger("create", path)
	entry, ok := a.vault.EntryByPath(path)
	if !ok {
		logger.Debug().Msg("Created entry vanished")
		return
	}
	a.addTree(entry)
	a.doc.Flush()
	logger.Debug().Str("type", entry.Type.String()).Msg("Handled vault event")
}

// HandleDelete implements vault.EventHandler
func (a *App) HandleDelete(path string) {
	removed := a.subtree(path)
	for _, p := range removed {
		a.explorer.RemoveEntry(p)
		a.service.HandleDelete(p)
	}
	a.doc.Flush()
	logger := a.eventLogger("delete", path)
	logger.Debug().Int("entries", len(removed)).Msg("Handled vault event")
}

// HandleRename implements vault.EventHandler. Entries below a renamed
// folder move with it.
func (a *App) HandleRename(oldPath, newPath string) {
	logger := a.eventLogger("rename", newPath).With().Str("from", oldPath).Logger()
	entry, ok := a.vault.EntryByPath(newPath)
	if !ok {
		logger.Debug().Msg("Renamed entry vanished")
		a.HandleDelete(oldPath)
		return
	}

	rs := a.store.Rules()
	for _, p := range a.subtree(oldPath) {
		a.explorer.RemoveEntry(p)
	}
	a.explorer.AddEntry(entry)
	a.service.HandleRename(oldPath, newPath, rs)

	if entry.Type == types.EntryFolder {
		for _, child := range a.children(newPath) {
			oldChild := oldPath + strings.TrimPrefix(child.Path, newPath)
			a.explorer.AddEntry(child)
			a.service.HandleRename(oldChild, child.Path, rs)
		}
	}
	a.doc.Flush()
	logger.Debug().Msg("Handled vault event")
}

func (a *App) eventLogger(event, path string) zerolog.Logger {
	return logging.WithFields(a.logger, map[string]interface{}{
		"event": event,
		"path":  path,
	})
}

// addTree renders entry, and its descendants for a folder, applying rules
// to each new path
func (a *App) addTree(entry types.Entry) {
	rs := a.store.Rules()
	a.explorer.AddEntry(entry)
	a.service.HandleCreate(entry.Path, rs)
	if entry.Type != types.EntryFolder {
		return
	}
	for _, child := range a.children(entry.Path) {
		a.explorer.AddEntry(child)
		a.service.HandleCreate(child.Path, rs)
	}
}

// subtree returns path and every rendered path below it
func (a *App) subtree(path string) []string {
	out := []string{path}
	prefix := path + "/"
	for _, p := range a.explorer.Paths() {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// children walks the vault for the entries below a folder
func (a *App) children(path string) []types.Entry {
	entries, err := a.vault.Entries()
	if err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("Cannot list folder")
		return nil
	}
	prefix := path + "/"
	var out []types.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.Path, prefix) {
			out = append(out, e)
		}
	}
	return out
}
