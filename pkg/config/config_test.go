// Test Type: Unit Test
// Description: Tests for layered configuration loading, validation and export

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG lookups at an empty directory
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	s := config.Default()

	assert.Equal(t, ":", s.IconIdentifier)
	assert.Empty(t, s.Rules)
	assert.True(t, s.Injection.Enabled)
	assert.Equal(t, "nav-files-container", s.Injection.Region)
	assert.Equal(t, "tree-item", s.Injection.MarkerClass)
	assert.Equal(t, "tree-item-inner", s.Injection.LabelClass)
	assert.Equal(t, 16.0, s.Injection.DefaultFontSize)
	assert.NoError(t, s.Validate())
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
icon_identifier = "::"

[[rules]]
icon = "LiStar"
for = "Files"
rule = '\.md$'
order = 2

[[rules]]
icon = "LiFolder"
rule = "[draft"
use_file_path = true

[[manual_icons]]
path = "inbox"
icon = "LiInbox"
`)

	s, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "::", s.IconIdentifier)
	require.Len(t, s.Rules, 2)
	assert.Equal(t, types.Rule{Icon: "LiStar", For: types.ScopeFiles, Rule: `\.md$`, Order: 2}, s.Rules[0])
	assert.Equal(t, types.ScopeEverything, s.Rules[1].For, "missing scope means everything")
	assert.True(t, s.Rules[1].UseFilePath)
	assert.Equal(t, map[string]string{"inbox": "LiInbox"}, s.ManualIconMap())
	assert.True(t, s.Injection.Enabled, "defaults survive partial files")
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"unknown_scope", "[[rules]]\nicon = \"x\"\nrule = \"y\"\nfor = \"links\"\n", errors.ErrConfigValid},
		{"empty_icon", "[[rules]]\nrule = \"y\"\n", errors.ErrConfigValid},
		{"empty_pattern", "[[rules]]\nicon = \"x\"\n", errors.ErrConfigValid},
		{"manual_without_icon", "[[manual_icons]]\npath = \"a\"\n", errors.ErrConfigValid},
		{"bad_toml", "icon_identifier = \n", errors.ErrConfigParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(config.LoadOptions{ConfigFile: writeConfig(t, tt.content)})
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}

	t.Run("missing_explicit_file", func(t *testing.T) {
		_, err := config.Load(config.LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "icon_identifier = \"!\"\n[injection]\ndefault_font_size = 12\n")

	t.Setenv("ICONRULES_INJECTION__ENABLED", "false")
	t.Setenv("ICONRULES_INJECTION__DEFAULT_FONT_SIZE", "14")

	s, err := config.Load(config.LoadOptions{
		ConfigFile: path,
		Overrides:  map[string]interface{}{"injection.default_font_size": 20.0},
	})
	require.NoError(t, err)

	assert.Equal(t, "!", s.IconIdentifier, "file beats defaults")
	assert.False(t, s.Injection.Enabled, "env beats defaults")
	assert.Equal(t, 20.0, s.Injection.DefaultFontSize, "overrides beat env")
}

func TestLoad_UserConfig(t *testing.T) {
	isolate(t)
	path := config.UserConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("icon_identifier = \"%\"\n"), 0644))

	s, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "%", s.IconIdentifier)
}

func TestExport(t *testing.T) {
	s := config.Default()
	s.Rules = []types.Rule{{Icon: "LiStar", For: types.ScopeFiles, Rule: `\.md$`}}

	out, err := config.Export(s, config.FormatTOML)
	require.NoError(t, err)
	var decoded config.Settings
	require.NoError(t, toml.Unmarshal(out, &decoded))
	assert.Equal(t, s.Rules, decoded.Rules)
	assert.Equal(t, s.Injection, decoded.Injection)

	out, err = config.Export(s, config.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "icon_identifier:")
	assert.Contains(t, string(out), "marker_class: tree-item")

	_, err = config.Export(s, "ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestGenerateConfigContent(t *testing.T) {
	isolate(t)
	content := config.GenerateConfigContent()

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"),
			"only table headers stay active, got %q", line)
	}
	assert.Contains(t, content, "[injection]")
	assert.Contains(t, content, "# icon_identifier = \":\"")

	s, err := config.Load(config.LoadOptions{ConfigFile: writeConfig(t, content)})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)
}

func TestStore(t *testing.T) {
	store := config.NewStore(config.Default())
	assert.True(t, store.InjectionEnabled())
	assert.Equal(t, ":", store.IconIdentifier())

	rule := types.Rule{Icon: "LiStar", For: types.ScopeFiles, Rule: "x"}
	require.NoError(t, store.Update(func(s *config.Settings) {
		s.Rules = append(s.Rules, rule)
		s.Injection.Enabled = false
	}))
	assert.False(t, store.InjectionEnabled())
	assert.Equal(t, []types.Rule{rule}, store.Rules())

	err := store.Update(func(s *config.Settings) { s.IconIdentifier = "" })
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Equal(t, ":", store.IconIdentifier(), "invalid update is discarded")

	rules := store.Rules()
	rules[0].Icon = "changed"
	assert.Equal(t, "LiStar", store.Rules()[0].Icon)
}
