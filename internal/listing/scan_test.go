package listing

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"imgview/internal/codec"
	serr "imgview/internal/errors"
	"imgview/pkg/testutils"
	"imgview/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func removeFile(path string) error {
	return os.Remove(path)
}

func TestScanFiltersBySupportedExtension(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.PNG":       "x",
		"b.jpeg":      "x",
		"c.Gif":       "x",
		".hidden.jpg": "x",
		"d.webp":      "x",
		"e.txt":       "x",
		"f.png.txt":   "x",
		"jpg":         "x",
		"g.tiff":      "x",
	}
	testutils.CreateTestFilesWithContent(t, dir, files)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	l := New()
	entries, err := l.ScanEntries(dir)
	require.NoError(t, err)

	set := codec.NewExtensionSet()
	var want []string
	for name := range files {
		if set.Match(name) {
			want = append(want, name)
		}
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name)
	}
	assert.ElementsMatch(t, want, got)
	assert.NotContains(t, got, "sub.png", "directories are skipped")
	assert.Contains(t, got, ".hidden.jpg", "hidden files are listed")
	for _, name := range got {
		assert.NotEqual(t, ".", name)
		assert.NotEqual(t, "..", name)
	}
}

func TestScanEntryMetadata(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteImage(t, dir, "a.png", 3, 3)
	testutils.SetModTime(t, path, at(42))

	entries, err := New().ScanEntries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "a.png", entries[0].Name)
	assert.Equal(t, info.Size(), entries[0].Size)
	assert.True(t, entries[0].ModTime.Equal(at(42)))
}

func TestScanFollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := testutils.WriteImage(t, t.TempDir(), "real.png", 2, 2)
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link.png")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.png"), filepath.Join(dir, "broken.png")))

	entries, err := New().ScanEntries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "link.png", entries[0].Name)
}

func TestScanDirectory(t *testing.T) {
	t.Run("directory with images", func(t *testing.T) {
		dir := t.TempDir()
		testutils.WriteImage(t, dir, "b.png", 1, 1)
		testutils.WriteImage(t, dir, "a.png", 1, 1)

		l := New()
		l.BeginPath(dir)
		state, err := l.ScanDirectory()
		require.NoError(t, err)
		assert.Equal(t, Ready, state)
		assert.Equal(t, []string{"a.png", "b.png"}, names(l))
		assert.Equal(t, 0, l.SelectedIndex())
	})

	t.Run("directory without images", func(t *testing.T) {
		dir := t.TempDir()
		testutils.CreateTestFilesWithContent(t, dir, map[string]string{"readme.md": "#"})

		l := New()
		l.BeginPath(dir)
		state, err := l.ScanDirectory()
		require.NoError(t, err)
		assert.Equal(t, Empty, state)
		assert.True(t, l.IsEmpty())
		assert.False(t, l.GoNext())
	})

	t.Run("preview entry is kept and selected", func(t *testing.T) {
		dir := t.TempDir()
		for _, n := range []string{"a.png", "b.png", "c.png", "d.png"} {
			testutils.WriteImage(t, dir, n, 1, 1)
		}
		l := New()
		require.Equal(t, Preview, l.BeginPath(filepath.Join(dir, "c.png")))
		state, err := l.ScanDirectory()
		require.NoError(t, err)
		assert.Equal(t, Ready, state)
		assert.Equal(t, 4, l.Count())
		assert.Equal(t, 2, l.SelectedIndex())
	})

	t.Run("preview entry missing from the scan is dropped", func(t *testing.T) {
		dir := t.TempDir()
		testutils.WriteImage(t, dir, "a.png", 1, 1)
		l := New()
		require.Equal(t, NotReady, l.BeginPath(dir))
		// Simulate a preview whose file vanished before the scan ran.
		l.state = Preview
		l.entries = []types.FileEntry{entry("gone.png", 0, 0, 1)}

		state, err := l.ScanDirectory()
		require.NoError(t, err)
		assert.Equal(t, Ready, state)
		assert.Equal(t, []string{"a.png"}, names(l))
		assert.Equal(t, 0, l.SelectedIndex())
	})

	t.Run("scan is a no-op outside NotReady and Preview", func(t *testing.T) {
		dir := t.TempDir()
		l := New()
		state, err := l.ScanDirectory()
		require.NoError(t, err)
		assert.Equal(t, Empty, state)

		notes := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(notes, []byte("x"), 0644))
		require.Equal(t, Unsupported, l.BeginPath(notes))
		state, err = l.ScanDirectory()
		require.NoError(t, err)
		assert.Equal(t, Unsupported, state)
		assert.Equal(t, 1, l.Count())
	})

	t.Run("unreadable directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "photos")
		require.NoError(t, os.Mkdir(dir, 0755))
		l := New()
		require.Equal(t, NotReady, l.BeginPath(dir))
		require.NoError(t, os.Remove(dir))

		state, err := l.ScanDirectory()
		require.Error(t, err)
		assert.Equal(t, Empty, state)
		assert.True(t, serr.IsPathNotFound(err))
		assert.True(t, strings.Contains(err.Error(), "photos"))
	})
}

func TestApplyScanDiscardsStaleResults(t *testing.T) {
	l := New()
	first := t.TempDir()
	second := t.TempDir()

	require.Equal(t, NotReady, l.BeginPath(first))
	require.Equal(t, NotReady, l.BeginPath(second))

	state := l.ApplyScan(first, []types.FileEntry{entry("old.png", 0, 0, 1)}, nil)
	assert.Equal(t, NotReady, state)
	assert.True(t, l.IsEmpty())

	state = l.ApplyScan(second, []types.FileEntry{entry("new.png", 0, 0, 1)}, nil)
	assert.Equal(t, Ready, state)

	// A second result for the same directory arrives after Ready.
	state = l.ApplyScan(second, nil, nil)
	assert.Equal(t, Ready, state)
	assert.Equal(t, 1, l.Count())
}

func TestReload(t *testing.T) {
	l := readyListing(t, entry("a.png", 0, 0, 1), entry("b.png", 1, 1, 1), entry("c.png", 2, 2, 1))
	dir := l.DirPath()
	require.True(t, l.Select(1))

	t.Run("selection follows the name", func(t *testing.T) {
		state := l.Reload(dir, []types.FileEntry{entry("0.png", 0, 0, 1), entry("a.png", 0, 0, 1), entry("b.png", 1, 1, 1), entry("c.png", 2, 2, 1)}, nil)
		assert.Equal(t, Ready, state)
		assert.Equal(t, 2, l.SelectedIndex())
	})

	t.Run("removed selection keeps the index", func(t *testing.T) {
		state := l.Reload(dir, []types.FileEntry{entry("0.png", 0, 0, 1), entry("a.png", 0, 0, 1)}, nil)
		assert.Equal(t, Ready, state)
		assert.Equal(t, 1, l.SelectedIndex(), "clamped to the new end")
	})

	t.Run("errors keep the old entries", func(t *testing.T) {
		state := l.Reload(dir, nil, serr.ErrPathNotFound)
		assert.Equal(t, Ready, state)
		assert.Equal(t, 2, l.Count())
	})

	t.Run("other directory is ignored", func(t *testing.T) {
		state := l.Reload(t.TempDir(), nil, nil)
		assert.Equal(t, Ready, state)
		assert.Equal(t, 2, l.Count())
	})

	t.Run("everything removed", func(t *testing.T) {
		assert.Equal(t, Empty, l.Reload(dir, nil, nil))
		assert.True(t, l.IsEmpty())
	})

	t.Run("images appear in an empty directory", func(t *testing.T) {
		assert.Equal(t, Ready, l.Reload(dir, []types.FileEntry{entry("x.png", 0, 0, 1)}, nil))
		assert.Equal(t, 0, l.SelectedIndex())
	})
}

func TestReloadKeepsLastOrder(t *testing.T) {
	l := readyListing(t, entry("a.png", 1, 0, 1), entry("b.png", 2, 0, 1), entry("c.png", 3, 0, 1))
	l.SortBy(types.SortModTime, false)
	require.True(t, l.Select(1))
	require.Equal(t, "b.png", l.entries[l.selected].Name)

	// b.png vanished; the cursor stays at index 1 of the sorted result.
	state := l.Reload(l.DirPath(), []types.FileEntry{entry("a.png", 1, 0, 1), entry("c.png", 3, 0, 1), entry("d.png", 4, 0, 1)}, nil)
	require.Equal(t, Ready, state)
	assert.Equal(t, []string{"d.png", "c.png", "a.png"}, names(l))
	assert.Equal(t, 1, l.SelectedIndex())
}
