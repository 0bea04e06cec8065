package rip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/xmodits/internal/model"
)

// makeTree creates files (with parent folders) under root. Each file's
// content length equals its index + 1 so sizes are distinguishable.
func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for i, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, make([]byte, i+1), 0o644))
	}
}

// paths extracts Module.Path in order.
func paths(modules []Module) []string {
	out := make([]string, 0, len(modules))
	for _, m := range modules {
		out = append(out, m.Path)
	}
	return out
}

// TestCollect_Files verifies explicit files are taken as given, whatever
// their extension.
func TestCollect_Files(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.it", "readme.txt")

	modules, skipped := Collect([]string{
		filepath.Join(root, "a.it"),
		filepath.Join(root, "readme.txt"),
	}, false)

	assert.Empty(t, skipped)
	require.Len(t, modules, 2)
	assert.Equal(t, model.FormatIT, modules[0].Format)
	assert.Equal(t, "a.it", modules[0].Name)
	assert.Equal(t, int64(1), modules[0].Size)
	assert.Equal(t, model.TrackerFormat(""), modules[1].Format)
}

// TestCollect_Folder verifies folder inputs only contribute supported
// formats and only descend when recursive.
func TestCollect_Folder(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "b.xm", "a.MOD", "cover.png", "sub/c.s3m", "sub/deeper/d.umx")

	flat, skipped := Collect([]string{root}, false)
	assert.Empty(t, skipped)
	assert.Equal(t, []string{
		filepath.Join(root, "a.MOD"),
		filepath.Join(root, "b.xm"),
	}, paths(flat))

	deep, skipped := Collect([]string{root}, true)
	assert.Empty(t, skipped)
	assert.Equal(t, []string{
		filepath.Join(root, "a.MOD"),
		filepath.Join(root, "b.xm"),
		filepath.Join(root, "sub", "c.s3m"),
		filepath.Join(root, "sub", "deeper", "d.umx"),
	}, paths(deep))
}

// TestCollect_Skips verifies unusable inputs are reported, not fatal.
func TestCollect_Skips(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.it", "empty/notes.txt")

	missing := filepath.Join(root, "missing.xm")
	empty := filepath.Join(root, "empty")

	modules, skipped := Collect([]string{missing, filepath.Join(root, "a.it"), empty}, false)

	assert.Equal(t, []string{filepath.Join(root, "a.it")}, paths(modules))
	require.Len(t, skipped, 2)
	assert.Equal(t, missing, skipped[0].Path)
	assert.ErrorIs(t, skipped[0].Err, os.ErrNotExist)
	assert.Equal(t, empty, skipped[1].Path)
}

// TestCollect_Deduplicates verifies a file named directly and reached
// through its folder is listed once.
func TestCollect_Deduplicates(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.it")

	modules, _ := Collect([]string{filepath.Join(root, "a.it"), root}, false)
	assert.Len(t, modules, 1)
}

// TestModule_FolderName verifies the self-contained folder naming.
func TestModule_FolderName(t *testing.T) {
	assert.Equal(t, "song_it", Module{Name: "song.it"}.FolderName())
	assert.Equal(t, "my_song_v2_xm", Module{Name: "my.song.v2.xm"}.FolderName())
	assert.Equal(t, "noext", Module{Name: "noext"}.FolderName())
}
