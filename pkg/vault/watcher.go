package vault

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// EventHandler receives vault changes
type EventHandler interface {
	HandleCreate(path string)
	HandleDelete(path string)
	HandleRename(oldPath, newPath string)
}

// ChangeKind classifies a vault change
type ChangeKind int

const (
	ChangeCreate ChangeKind = iota
	ChangeDelete
	ChangeRename
)

// Change is a vault-level change derived from one or more fsnotify events
type Change struct {
	Kind    ChangeKind
	Path    string
	OldPath string
}

// renameWindow is how long a rename waits for the matching create before it
// is treated as a delete
const renameWindow = 100 * time.Millisecond

// Translator pairs fsnotify rename and create events into vault changes.
// fsnotify reports a rename as RENAME on the old name followed by CREATE on
// the new one.
type Translator struct {
	vault   *Vault
	pending string
}

// NewTranslator creates a translator for paths below the vault root
func NewTranslator(v *Vault) *Translator {
	return &Translator{vault: v}
}

// Pending reports whether a rename is waiting for its create
func (t *Translator) Pending() bool { return t.pending != "" }

// Translate converts one event into zero or more changes
func (t *Translator) Translate(ev fsnotify.Event) []Change {
	rel, ok := t.vault.Rel(ev.Name)
	if !ok || isHidden(rel) {
		return nil
	}

	var out []Change
	switch {
	case ev.Has(fsnotify.Rename):
		out = append(out, t.Flush()...)
		t.pending = rel
	case ev.Has(fsnotify.Create):
		if t.pending != "" {
			out = append(out, Change{Kind: ChangeRename, OldPath: t.pending, Path: rel})
			t.pending = ""
		} else {
			out = append(out, Change{Kind: ChangeCreate, Path: rel})
		}
	case ev.Has(fsnotify.Remove):
		if t.pending == rel {
			t.pending = ""
		}
		out = append(out, Change{Kind: ChangeDelete, Path: rel})
	}
	return out
}

// Flush resolves a rename that never saw its create as a delete
func (t *Translator) Flush() []Change {
	if t.pending == "" {
		return nil
	}
	c := Change{Kind: ChangeDelete, Path: t.pending}
	t.pending = ""
	return []Change{c}
}

func isHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// Dispatch forwards changes to a handler
func Dispatch(h EventHandler, changes []Change) {
	for _, c := range changes {
		switch c.Kind {
		case ChangeCreate:
			h.HandleCreate(c.Path)
		case ChangeDelete:
			h.HandleDelete(c.Path)
		case ChangeRename:
			h.HandleRename(c.OldPath, c.Path)
		}
	}
}

// Watcher feeds filesystem events of a vault to an EventHandler. Handler
// calls happen on the goroutine running Run, one at a time.
type Watcher struct {
	vault      *Vault
	fsw        *fsnotify.Watcher
	handler    EventHandler
	translator *Translator
	logger     zerolog.Logger
}

// NewWatcher watches every directory of the vault
func NewWatcher(v *Vault, h EventHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "cannot create filesystem watcher")
	}

	w := &Watcher{
		vault:      v,
		fsw:        fsw,
		handler:    h,
		translator: NewTranslator(v),
		logger:     logging.GetLogger("vault.watcher"),
	}
	if err := w.addTree(v.Root()); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return afero.Walk(w.vault.Fs(), dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if p != w.vault.Root() && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return errors.Wrapf(err, errors.ErrWatch, "cannot watch %s", p)
		}
		return nil
	})
}

// Run processes events until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info().Str("root", w.vault.Root()).Msg("Watching vault")

	var flush <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			Dispatch(w.handler, w.translator.Flush())
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.logger.Trace().Str("event", ev.String()).Msg("Filesystem event")

			if ev.Has(fsnotify.Create) {
				if info, err := w.vault.Fs().Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Warn().Err(err).Str("dir", ev.Name).Msg("Cannot watch new directory")
					}
				}
			}

			Dispatch(w.handler, w.translator.Translate(ev))
			flush = nil
			if w.translator.Pending() {
				flush = time.After(renameWindow)
			}

		case <-flush:
			Dispatch(w.handler, w.translator.Flush())
			flush = nil

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Filesystem watcher error")
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
