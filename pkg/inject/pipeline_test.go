package inject_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arthur-debert/iconrules/pkg/dom"
	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/inject"
	"github.com/arthur-debert/iconrules/pkg/testutil"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/arthur-debert/iconrules/pkg/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	enabled    atomic.Bool
	identifier string
}

func newSettings(identifier string) *settings {
	s := &settings{identifier: identifier}
	s.enabled.Store(true)
	return s
}

func (s *settings) InjectionEnabled() bool  { return s.enabled.Load() }
func (s *settings) IconIdentifier() string { return s.identifier }

type pendingRegion struct {
	root *dom.Node
}

func (r pendingRegion) Root() *dom.Node        { return r.root }
func (r pendingRegion) Ready() <-chan struct{} { return make(chan struct{}) }

func setup(t *testing.T, paths ...string) (*testutil.TestEnvironment, *settings, *inject.Pipeline) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, paths...)
	env.AddIcons("star", "moon", "one", "two")
	s := newSettings(":")
	p := inject.New(inject.Options{
		Doc:      env.Doc,
		Region:   env.Explorer,
		Icons:    env.Icons,
		Settings: s,
	})
	return env, s, p
}

func label(env *testutil.TestEnvironment, path string) *dom.Node {
	return env.Explorer.Target(path).Query(vault.ClassInner)
}

func shortcodeIcons(n *dom.Node) []string {
	var names []string
	for _, span := range n.QueryAll(inject.ClassShortcodeIcon) {
		name, _ := span.Attr("data-icon")
		names = append(names, name)
	}
	return names
}

func addEntry(env *testutil.TestEnvironment, p string) {
	env.WriteEntry(p)
	entry, ok := env.Vault.EntryByPath(p)
	if ok {
		env.Explorer.AddEntry(entry)
	}
}

func TestRegister_InitialScan(t *testing.T) {
	env, _, p := setup(t, "todo :star:.md", "plain.md")

	require.NoError(t, p.Register(context.Background()))
	assert.Equal(t, inject.Active, p.State())

	l := label(env, "todo :star:.md")
	assert.Equal(t, "todo .md", l.TextContent())
	assert.Equal(t, []string{"star"}, shortcodeIcons(l))
	assert.Equal(t, "plain.md", label(env, "plain.md").TextContent())
	assert.Equal(t, 1, env.Doc.ObserverCount())
}

func TestRegister_SingleObserver(t *testing.T) {
	env, _, p := setup(t, "a.md")

	require.NoError(t, p.Register(context.Background()))
	require.NoError(t, p.Register(context.Background()))
	assert.Equal(t, 1, env.Doc.ObserverCount())
	assert.Equal(t, inject.Active, p.State())

	addEntry(env, "b :moon:.md")
	env.Doc.Flush()
	assert.Equal(t, []string{"moon"}, shortcodeIcons(label(env, "b :moon:.md")), "label is rewritten once")
}

func TestRegister_Disabled(t *testing.T) {
	env, s, p := setup(t, "a :star:.md")
	s.enabled.Store(false)

	require.NoError(t, p.Register(context.Background()))
	assert.Equal(t, inject.Unregistered, p.State())
	assert.Equal(t, 0, env.Doc.ObserverCount())
	assert.Empty(t, shortcodeIcons(label(env, "a :star:.md")))
}

func TestRegister_RegionUnavailable(t *testing.T) {
	t.Run("not_ready_before_deadline", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		p := inject.New(inject.Options{
			Doc:      env.Doc,
			Region:   pendingRegion{root: env.Explorer.Root()},
			Icons:    env.Icons,
			Settings: newSettings(":"),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		err := p.Register(ctx)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRegionUnavailable))
		assert.Equal(t, inject.Unregistered, p.State())
		assert.Equal(t, 0, env.Doc.ObserverCount())
	})

	t.Run("not_rendered", func(t *testing.T) {
		doc := dom.NewDocument()
		p := inject.New(inject.Options{
			Doc:      doc,
			Region:   readyRegion{},
			Settings: newSettings(":"),
		})
		err := p.Register(context.Background())
		assert.True(t, errors.IsErrorCode(err, errors.ErrRegionUnavailable))
	})
}

type readyRegion struct{}

func (readyRegion) Root() *dom.Node        { return nil }
func (readyRegion) Ready() <-chan struct{} { return nil }

var _ types.Region = readyRegion{}

func TestIncrementalScan(t *testing.T) {
	env, _, p := setup(t, "a.md")
	require.NoError(t, p.Register(context.Background()))

	t.Run("added_marked_node", func(t *testing.T) {
		addEntry(env, "x :star: y.md")
		assert.Equal(t, 1, env.Doc.Flush())
		l := label(env, "x :star: y.md")
		assert.Equal(t, "x  y.md", l.TextContent())
		assert.Equal(t, []string{"star"}, shortcodeIcons(l))
	})

	t.Run("added_wrapper_scans_descendants", func(t *testing.T) {
		wrapper := env.Doc.CreateElement("div", "nav-folder-children")
		row := env.Doc.CreateElement("div", vault.ClassItem)
		inner := env.Doc.CreateElement("div", vault.ClassInner)
		inner.AppendChild(env.Doc.CreateText("nested :moon:"))
		row.AppendChild(inner)
		wrapper.AppendChild(row)

		env.Explorer.Root().AppendChild(wrapper)
		env.Doc.Flush()
		assert.Equal(t, []string{"moon"}, shortcodeIcons(inner))
	})

	t.Run("own_mutations_are_harmless", func(t *testing.T) {
		// records produced by label rewrites carry only text and icon nodes
		env.Doc.Flush()
		assert.Equal(t, 0, env.Doc.Flush())
		assert.Equal(t, []string{"star"}, shortcodeIcons(label(env, "x :star: y.md")))
	})
}

func TestScanLabel(t *testing.T) {
	env, _, p := setup(t)
	l := env.Doc.CreateElement("div", vault.ClassInner)

	t.Run("trim_offsets", func(t *testing.T) {
		l.SetText("a :one: b :two: c")
		assert.Equal(t, 2, p.ScanLabel(l))

		children := l.Children()
		require.Len(t, children, 5)
		assert.Equal(t, "a ", children[0].Data())
		assert.True(t, children[1].HasClass(inject.ClassShortcodeIcon))
		assert.Equal(t, " b ", children[2].Data())
		assert.True(t, children[3].HasClass(inject.ClassShortcodeIcon))
		assert.Equal(t, " c", children[4].Data())
		assert.Equal(t, []string{"one", "two"}, shortcodeIcons(l))
	})

	t.Run("unknown_icon_left_untouched", func(t *testing.T) {
		l.SetText("keep :nope: and :star:")
		assert.Equal(t, 1, p.ScanLabel(l))
		assert.Equal(t, "keep :nope: and ", l.TextContent())
	})

	t.Run("rescan_keeps_existing_icons", func(t *testing.T) {
		l.SetText("a :one:")
		require.Equal(t, 1, p.ScanLabel(l))
		l.AppendChild(env.Doc.CreateText(" then :two:"))

		assert.Equal(t, 1, p.ScanLabel(l))
		assert.Equal(t, []string{"one", "two"}, shortcodeIcons(l))
		assert.Equal(t, 0, p.ScanLabel(l))
	})
}

func TestDisableBetweenBatches(t *testing.T) {
	env, s, p := setup(t, "a.md")
	require.NoError(t, p.Register(context.Background()))

	addEntry(env, "first :star:.md")
	env.Doc.Flush()
	require.Equal(t, []string{"star"}, shortcodeIcons(label(env, "first :star:.md")))

	s.enabled.Store(false)
	addEntry(env, "second :star:.md")
	addEntry(env, "third :star:.md")
	env.Doc.Flush()

	assert.Equal(t, inject.TornDown, p.State())
	assert.Equal(t, 0, env.Doc.ObserverCount())
	assert.Empty(t, shortcodeIcons(label(env, "second :star:.md")))
	assert.Empty(t, shortcodeIcons(label(env, "third :star:.md")))

	addEntry(env, "fourth :star:.md")
	assert.Equal(t, 0, env.Doc.Flush())
	assert.Empty(t, shortcodeIcons(label(env, "fourth :star:.md")))
}

func TestDisconnect(t *testing.T) {
	env, _, p := setup(t, "a.md")
	p.Disconnect()
	assert.Equal(t, inject.Unregistered, p.State())

	require.NoError(t, p.Register(context.Background()))
	p.Disconnect()
	p.Disconnect()
	assert.Equal(t, inject.TornDown, p.State())
	assert.Equal(t, 0, env.Doc.ObserverCount())

	require.NoError(t, p.Register(context.Background()))
	assert.Equal(t, inject.Active, p.State())
}

func TestFontSize(t *testing.T) {
	env, _, p := setup(t)
	env.Explorer.Root().SetAttr(inject.AttrFontSize, "20")

	l := env.Doc.CreateElement("div", vault.ClassInner)
	l.SetText(":star:")
	require.Equal(t, 1, p.ScanLabel(l))
	assert.Contains(t, l.InnerHTML(), `width="20px"`)

	env.Explorer.Root().SetAttr(inject.AttrFontSize, "24")
	l.SetText(":star:")
	p.ScanLabel(l)
	assert.Contains(t, l.InnerHTML(), `width="20px"`, "size is cached")

	p.OnIconsReloaded()
	l.SetText(":star:")
	p.ScanLabel(l)
	assert.Contains(t, l.InnerHTML(), `width="24px"`)
}

func TestFontSize_Default(t *testing.T) {
	env, _, p := setup(t)
	l := env.Doc.CreateElement("div", vault.ClassInner)
	l.SetText(":star:")
	p.ScanLabel(l)
	assert.Contains(t, l.InnerHTML(), `width="16px"`)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unregistered", inject.Unregistered.String())
	assert.Equal(t, "torn-down", inject.TornDown.String())
}
