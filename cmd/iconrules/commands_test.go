package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/core"
	"github.com/arthur-debert/iconrules/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	vault  string
	icons  string
	config string
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	root := t.TempDir()
	f := fixture{
		vault:  filepath.Join(root, "vault"),
		icons:  filepath.Join(root, "icons"),
		config: filepath.Join(root, "config.toml"),
	}

	write := func(path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(filepath.Join(f.vault, "notes", "todo.md"), "# todo")
	write(filepath.Join(f.vault, "notes", "todo.txt"), "todo")
	write(filepath.Join(f.icons, "lucide", "star.svg"), testutil.IconSVG)
	write(f.config, `
[[rules]]
icon = "LiStar"
for = "files"
rule = '\.md$'

[icons]
dir = "`+filepath.ToSlash(f.icons)+`"
`)
	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	f := setupFixture(t)

	out, err := run(t, "--config", f.config, "match", f.vault)
	require.NoError(t, err)
	assert.Contains(t, out, "notes/\n")
	assert.Contains(t, out, "  todo.md [LiStar] \\.md$\n")
	assert.Contains(t, out, "  todo.txt\n")
}

func TestApplyCommand(t *testing.T) {
	f := setupFixture(t)

	out, err := run(t, "--config", f.config, "apply", f.vault, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "path: notes/todo.md")
	assert.Contains(t, out, "icon: LiStar")
}

func TestRulesCommand(t *testing.T) {
	f := setupFixture(t)

	out, err := run(t, "--config", f.config, "rules", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "LiStar")
	assert.Contains(t, out, "files")
}

func TestLabelCommand(t *testing.T) {
	f := setupFixture(t)

	out, err := run(t, "--config", f.config, "label", "a :LiStar: b :LiNope:")
	require.NoError(t, err)
	assert.Contains(t, out, `<span class="iconize-shortcode-icon" data-icon="LiStar">`)
	assert.Contains(t, out, " b :LiNope:")
	assert.NotContains(t, out, ":LiStar:")
}

func TestConfigCommands(t *testing.T) {
	f := setupFixture(t)

	out, err := run(t, "--config", f.config, "config", "dump", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "icon_identifier:")
	assert.Contains(t, out, "LiStar")

	out, err = run(t, "--no-inject", "config", "dump")
	require.NoError(t, err)
	assert.Contains(t, out, "enabled = false")

	out, err = run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, `# icon_identifier = ":"`)
}

func TestVersionCommand(t *testing.T) {
	setupFixture(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "iconrules version dev")
}

func TestErrors(t *testing.T) {
	f := setupFixture(t)

	_, err := run(t)
	assert.Error(t, err, "no command")

	_, err = run(t, "--config", filepath.Join(f.vault, "missing.toml"), "rules")
	assert.Error(t, err)

	_, err = run(t, "--config", f.config, "rules", "-o", "json")
	assert.Error(t, err)
}

func TestMissingVault(t *testing.T) {
	f := setupFixture(t)

	_, err := run(t, "--config", f.config, "match", filepath.Join(f.vault, "nowhere"))
	assert.Error(t, err)
}

func TestReporter(t *testing.T) {
	f := setupFixture(t)
	settings, err := config.Load(config.LoadOptions{ConfigFile: f.config})
	require.NoError(t, err)

	app := core.New(core.Options{Fs: afero.NewOsFs(), VaultDir: f.vault, Settings: settings})
	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(app.Stop)

	var out bytes.Buffer
	r := newReporter(app, &out)

	require.NoError(t, os.WriteFile(filepath.Join(f.vault, "notes", "new.md"), []byte("# new"), 0644))
	r.HandleCreate("notes/new.md")
	require.NoError(t, os.Rename(filepath.Join(f.vault, "notes", "new.md"), filepath.Join(f.vault, "notes", "moved.md")))
	r.HandleRename("notes/new.md", "notes/moved.md")
	require.NoError(t, os.Remove(filepath.Join(f.vault, "notes", "moved.md")))
	r.HandleDelete("notes/moved.md")

	assert.Equal(t, "+ notes/new.md [LiStar]\n~ notes/new.md -> notes/moved.md\n- notes/moved.md\n", out.String())
	_, ok := app.Cache().Get("notes/moved.md")
	assert.False(t, ok)
}
