package fsmeta

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirthTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	before := time.Now().Add(-time.Minute)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	info, err := os.Stat(path)
	require.NoError(t, err)

	bt := BirthTime(path, info)
	if bt.IsZero() {
		t.Skipf("filesystem on %s does not record birth time", runtime.GOOS)
	}
	assert.True(t, bt.After(before), "birth time %v before file was written", bt)
	assert.False(t, bt.After(time.Now().Add(time.Minute)))

	// An older mtime does not move the birth time
	old := time.Date(2001, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, old, old))
	assert.Equal(t, bt, BirthTime(path, nil))
}

func TestBirthTimeMissingFile(t *testing.T) {
	assert.True(t, BirthTime(filepath.Join(t.TempDir(), "gone.png"), nil).IsZero())
}

func TestLongPath(t *testing.T) {
	assert.Equal(t, "", LongPath(""))

	dir := t.TempDir()
	got := LongPath(dir)
	if runtime.GOOS != "windows" {
		assert.Equal(t, dir, got)
		return
	}
	assert.NotEmpty(t, got)
}
