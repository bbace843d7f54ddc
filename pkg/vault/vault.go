package vault

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Vault is a directory tree addressed by vault-relative paths
type Vault struct {
	fs     afero.Fs
	root   string
	logger zerolog.Logger
}

// New creates a vault rooted at root on fs
func New(fs afero.Fs, root string) *Vault {
	return &Vault{
		fs:     fs,
		root:   filepath.Clean(root),
		logger: logging.GetLogger("vault"),
	}
}

// NewOS creates a vault on the host filesystem
func NewOS(root string) *Vault {
	return New(afero.NewOsFs(), root)
}

// Fs returns the underlying filesystem
func (v *Vault) Fs() afero.Fs { return v.fs }

// Root returns the vault root directory
func (v *Vault) Root() string { return v.root }

// Abs converts a vault path to a filesystem path
func (v *Vault) Abs(p string) string {
	return filepath.Join(v.root, filepath.FromSlash(p))
}

// Rel converts a filesystem path below the root to a vault path
func (v *Vault) Rel(abs string) (string, bool) {
	rel, err := filepath.Rel(v.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// EntryByPath implements types.EntryRepository
func (v *Vault) EntryByPath(p string) (types.Entry, bool) {
	p = strings.Trim(p, "/")
	if p == "" {
		return types.Entry{}, false
	}
	info, err := v.fs.Stat(v.Abs(p))
	if err != nil {
		v.logger.Trace().Str("path", p).Err(err).Msg("Entry lookup missed")
		return types.Entry{}, false
	}
	return entryFromInfo(p, info), true
}

// Entries walks the vault and returns every entry in lexical order. Hidden
// files and directories (leading dot) are skipped.
func (v *Vault) Entries() ([]types.Entry, error) {
	var entries []types.Entry
	err := afero.Walk(v.fs, v.root, func(abs string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, ok := v.Rel(abs)
		if !ok {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		entries = append(entries, entryFromInfo(rel, info))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot walk vault %s", v.root)
	}

	v.logger.Debug().
		Str("root", v.root).
		Int("entries", len(entries)).
		Msg("Walked vault")
	return entries, nil
}

func entryFromInfo(p string, info os.FileInfo) types.Entry {
	entry := types.Entry{
		Path: p,
		Name: path.Base(p),
		Type: types.EntryFile,
	}
	if info.IsDir() {
		entry.Type = types.EntryFolder
	}
	return entry
}
