package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c, ok := classify("/tmp/prefabs/player.yaml")
	require.True(t, ok)
	assert.Equal(t, Change{Name: "player.yaml", Kind: ChangeSpec}, c)

	c, ok = classify("scripts/finish.tengo")
	require.True(t, ok)
	assert.Equal(t, ChangeScript, c.Kind)

	_, ok = classify("notes.txt")
	assert.False(t, ok)
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "camera.yaml"), []byte("distance: 4\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	var got []Change
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, Change{Name: "camera.yaml", Kind: ChangeSpec}, got[0])
	for _, c := range got {
		assert.NotEqual(t, "ignored.txt", c.Name)
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Empty(t, w.Drain())
}
