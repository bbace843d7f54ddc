package testutil

import (
	"path"
	"strings"
	"testing"

	"github.com/arthur-debert/iconrules/pkg/dom"
	"github.com/arthur-debert/iconrules/pkg/iconcache"
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/vault"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// VaultRoot is the vault directory inside the in-memory filesystem
const VaultRoot = "/vault"

// IconSVG is the markup used for every fixture icon
const IconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><circle cx="12" cy="12" r="10"/></svg>`

// TestEnvironment wires an in-memory vault to a rendered explorer
type TestEnvironment struct {
	FS       afero.Fs
	Vault    *vault.Vault
	Doc      *dom.Document
	Explorer *vault.Explorer
	Icons    *icons.Registry
	Cache    *iconcache.Cache

	t *testing.T
}

// NewTestEnvironment creates the vault files (trailing slash for folders),
// renders them into an explorer and returns the environment. Parent folders
// are created and rendered implicitly.
func NewTestEnvironment(t *testing.T, paths ...string) *TestEnvironment {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(VaultRoot, 0755))

	env := &TestEnvironment{
		FS:    fs,
		Vault: vault.New(fs, VaultRoot),
		Doc:   dom.NewDocument(),
		Icons: icons.NewRegistry(),
		Cache: iconcache.New(),
		t:     t,
	}
	for _, p := range paths {
		env.WriteEntry(p)
	}

	env.Explorer = vault.NewExplorer(env.Doc, vault.ClassContainer)
	entries, err := env.Vault.Entries()
	require.NoError(t, err)
	env.Explorer.Load(entries)
	return env
}

// WriteEntry creates a file or, with a trailing slash, a folder in the vault
// without rendering it
func (e *TestEnvironment) WriteEntry(p string) {
	e.t.Helper()
	if strings.HasSuffix(p, "/") {
		require.NoError(e.t, e.FS.MkdirAll(e.Vault.Abs(strings.Trim(p, "/")), 0755))
		return
	}
	require.NoError(e.t, e.FS.MkdirAll(e.Vault.Abs(path.Dir(p)), 0755))
	require.NoError(e.t, afero.WriteFile(e.FS, e.Vault.Abs(p), []byte("# "+path.Base(p)), 0644))
}

// AddIcons registers fixture icons under the given names
func (e *TestEnvironment) AddIcons(names ...string) {
	e.t.Helper()
	for _, name := range names {
		icon, err := icons.New("", name, IconSVG)
		require.NoError(e.t, err)
		require.NoError(e.t, e.Icons.Add(icon))
	}
}

// Views returns the explorer as a container source
func (e *TestEnvironment) Views() vault.Views {
	return vault.Views{e.Explorer}
}

// IconNodes returns every rule icon node rendered for path
func (e *TestEnvironment) IconNodes(p string) []*dom.Node {
	target := e.Explorer.Target(p)
	if target == nil {
		return nil
	}
	var out []*dom.Node
	for _, c := range target.Children() {
		if c.HasClass(vault.ClassIcon) {
			out = append(out, c)
		}
	}
	return out
}
