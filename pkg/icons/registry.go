package icons

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/registry"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Registry holds every loaded icon, keyed by prefixed name
type Registry struct {
	icons  registry.Registry[*Icon]
	logger zerolog.Logger
}

// NewRegistry creates an empty icon registry
func NewRegistry() *Registry {
	return &Registry{
		icons:  registry.New[*Icon](),
		logger: logging.GetLogger("icons.registry"),
	}
}

// Add registers an icon, replacing one with the same name
func (r *Registry) Add(icon *Icon) error {
	return r.icons.Put(icon.Name(), icon)
}

// IconByName implements types.IconLookup
func (r *Registry) IconByName(name string) (types.Icon, bool) {
	icon, ok := r.icons.Lookup(name)
	if !ok {
		return nil, false
	}
	return icon, true
}

// Names returns every registered icon name, sorted
func (r *Registry) Names() []string {
	return r.icons.List()
}

// Len returns the number of registered icons
func (r *Registry) Len() int {
	return r.icons.Count()
}

// Reset drops every icon, ahead of reloading the packs
func (r *Registry) Reset() {
	r.icons.Clear()
}

// LoadDir loads every pack below dir. Each subdirectory is a pack; its SVG
// files become icons. Files that do not parse are skipped with a warning.
func (r *Registry) LoadDir(fs afero.Fs, dir string) (int, error) {
	packs, err := afero.ReadDir(fs, dir)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read icon directory %s", dir)
	}

	loaded := 0
	for _, pack := range packs {
		if !pack.IsDir() || strings.HasPrefix(pack.Name(), ".") {
			continue
		}
		n, err := r.LoadPack(fs, filepath.Join(dir, pack.Name()), pack.Name())
		if err != nil {
			return loaded, err
		}
		loaded += n
	}

	r.logger.Info().
		Str("dir", dir).
		Int("icons", loaded).
		Msg("Loaded icon packs")
	return loaded, nil
}

// LoadPack loads the SVG files of one pack directory
func (r *Registry) LoadPack(fs afero.Fs, dir, pack string) (int, error) {
	files, err := afero.ReadDir(fs, dir)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read icon pack %s", pack)
	}

	prefix := PackPrefix(pack)
	loaded := 0
	for _, f := range files {
		if f.IsDir() || !strings.EqualFold(path.Ext(f.Name()), ".svg") {
			continue
		}
		data, err := afero.ReadFile(fs, filepath.Join(dir, f.Name()))
		if err != nil {
			return loaded, errors.Wrapf(err, errors.ErrFileAccess, "cannot read icon %s", f.Name())
		}

		name := NormalizeName(strings.TrimSuffix(f.Name(), path.Ext(f.Name())))
		icon, err := New(prefix, name, string(data))
		if err != nil {
			r.logger.Warn().Err(err).Str("file", f.Name()).Msg("Skipping invalid icon")
			continue
		}
		if err := r.Add(icon); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}
