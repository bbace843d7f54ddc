package vault_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/iconrules/pkg/vault"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHandler struct {
	mock.Mock
	mu sync.Mutex
}

func (m *mockHandler) HandleCreate(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Called(path)
}

func (m *mockHandler) HandleDelete(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Called(path)
}

func (m *mockHandler) HandleRename(oldPath, newPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Called(oldPath, newPath)
}

func (m *mockHandler) called(method string, args ...interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Calls {
		if c.Method == method && assert.ObjectsAreEqual(args, []interface{}(c.Arguments)) {
			return true
		}
	}
	return false
}

func TestTranslator(t *testing.T) {
	v := vault.New(nil, "/vault")

	t.Run("create_and_remove", func(t *testing.T) {
		tr := vault.NewTranslator(v)
		assert.Equal(t,
			[]vault.Change{{Kind: vault.ChangeCreate, Path: "a.md"}},
			tr.Translate(fsnotify.Event{Name: "/vault/a.md", Op: fsnotify.Create}))
		assert.Equal(t,
			[]vault.Change{{Kind: vault.ChangeDelete, Path: "a.md"}},
			tr.Translate(fsnotify.Event{Name: "/vault/a.md", Op: fsnotify.Remove}))
	})

	t.Run("rename_pairs_with_following_create", func(t *testing.T) {
		tr := vault.NewTranslator(v)
		assert.Empty(t, tr.Translate(fsnotify.Event{Name: "/vault/old.md", Op: fsnotify.Rename}))
		assert.True(t, tr.Pending())

		changes := tr.Translate(fsnotify.Event{Name: "/vault/notes/new.md", Op: fsnotify.Create})
		assert.Equal(t, []vault.Change{{Kind: vault.ChangeRename, OldPath: "old.md", Path: "notes/new.md"}}, changes)
		assert.False(t, tr.Pending())
	})

	t.Run("unpaired_rename_flushes_as_delete", func(t *testing.T) {
		tr := vault.NewTranslator(v)
		tr.Translate(fsnotify.Event{Name: "/vault/a.md", Op: fsnotify.Rename})
		changes := tr.Translate(fsnotify.Event{Name: "/vault/b.md", Op: fsnotify.Rename})
		assert.Equal(t, []vault.Change{{Kind: vault.ChangeDelete, Path: "a.md"}}, changes)
		assert.Equal(t, []vault.Change{{Kind: vault.ChangeDelete, Path: "b.md"}}, tr.Flush())
		assert.Empty(t, tr.Flush())
	})

	t.Run("ignores_hidden_outside_and_writes", func(t *testing.T) {
		tr := vault.NewTranslator(v)
		assert.Empty(t, tr.Translate(fsnotify.Event{Name: "/vault/.obsidian/workspace.json", Op: fsnotify.Create}))
		assert.Empty(t, tr.Translate(fsnotify.Event{Name: "/tmp/x.md", Op: fsnotify.Create}))
		assert.Empty(t, tr.Translate(fsnotify.Event{Name: "/vault/a.md", Op: fsnotify.Write}))
	})
}

func TestDispatch(t *testing.T) {
	h := &mockHandler{}
	h.On("HandleCreate", "a.md").Return()
	h.On("HandleDelete", "b.md").Return()
	h.On("HandleRename", "c.md", "d.md").Return()

	vault.Dispatch(h, []vault.Change{
		{Kind: vault.ChangeCreate, Path: "a.md"},
		{Kind: vault.ChangeDelete, Path: "b.md"},
		{Kind: vault.ChangeRename, OldPath: "c.md", Path: "d.md"},
	})

	h.AssertExpectations(t)
}

func TestWatcher_Run(t *testing.T) {
	root := t.TempDir()
	v := vault.NewOS(root)

	h := &mockHandler{}
	h.On("HandleCreate", mock.Anything).Return()
	h.On("HandleDelete", mock.Anything).Return()
	h.On("HandleRename", mock.Anything, mock.Anything).Return()

	w, err := vault.NewWatcher(v, h)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "todo.md"), []byte("# todo"), 0644))
	require.Eventually(t, func() bool { return h.called("HandleCreate", "todo.md") },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(root, "todo.md")))
	require.Eventually(t, func() bool { return h.called("HandleDelete", "todo.md") },
		2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
