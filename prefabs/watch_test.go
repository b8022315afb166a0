package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/world.yaml", ChangeSpec, true},
		{"level.YML", ChangeSpec, true},
		{"scripts/patrol.tengo", ChangeScript, true},
		{"scripts/patrol.lua", 0, false},
		{"notes.txt", 0, false},
		{"world.yaml~", 0, false},
	}
	for _, tc := range cases {
		kind, ok := classify(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		if tc.ok {
			assert.Equal(t, tc.kind, kind, tc.path)
		}
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(zaptest.NewLogger(t), dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorldFile), []byte("physics: {}\n"), 0o644))

	var got []Change
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)

	for _, c := range got {
		assert.Equal(t, WorldFile, c.Name())
		assert.Equal(t, ChangeSpec, c.Kind)
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(nil, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(nil, t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Empty(t, w.Drain())

	var nilWatcher *Watcher
	assert.Nil(t, nilWatcher.Drain())
}
