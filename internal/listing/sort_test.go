package listing

import (
	"testing"
	"time"

	"imgview/internal/fsmeta"
	"imgview/pkg/testutils"
	"imgview/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortBy(t *testing.T) {
	entries := []types.FileEntry{
		entry("big.png", 3, 1, 300),
		entry("small.png", 1, 3, 100),
		entry("mid.png", 2, 2, 200),
	}

	tests := []struct {
		field types.SortField
		asc   bool
		want  []string
	}{
		{types.SortSize, true, []string{"small.png", "mid.png", "big.png"}},
		{types.SortSize, false, []string{"big.png", "mid.png", "small.png"}},
		{types.SortModTime, true, []string{"small.png", "mid.png", "big.png"}},
		{types.SortModTime, false, []string{"big.png", "mid.png", "small.png"}},
		{types.SortBirthTime, true, []string{"big.png", "mid.png", "small.png"}},
		{types.SortBirthTime, false, []string{"small.png", "mid.png", "big.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			l := readyListing(t, append([]types.FileEntry(nil), entries...)...)
			l.SortBy(tt.field, tt.asc)
			assert.Equal(t, tt.want, names(l))
		})
	}
}

func TestSortByKeepsSelection(t *testing.T) {
	l := readyListing(t, fiveEntries()...)
	require.True(t, l.Select(1))

	sequence := []struct {
		field types.SortField
		asc   bool
	}{
		{types.SortSize, false},
		{types.SortModTime, true},
		{types.SortBirthTime, false},
		{types.SortSize, true},
	}
	for _, s := range sequence {
		l.SortBy(s.field, s.asc)
		sel, ok := l.Selected()
		require.True(t, ok)
		assert.Equal(t, "1.png", sel.Name)
	}
	l.SortBy(types.SortSize, false)
	assert.Equal(t, 3, l.SelectedIndex())
}

func TestSortByModTimeTieBreak(t *testing.T) {
	entries := []types.FileEntry{
		entry("late-birth.png", 5, 9, 1),
		entry("early-birth.png", 5, 1, 1),
		entry("older.png", 1, 5, 1),
	}

	l := readyListing(t, entries...)
	l.SortBy(types.SortModTime, true)
	assert.Equal(t, []string{"older.png", "early-birth.png", "late-birth.png"}, names(l))

	l.SortBy(types.SortModTime, false)
	assert.Equal(t, []string{"early-birth.png", "late-birth.png", "older.png"}, names(l),
		"ties stay in birth time order when descending")
}

func TestSortByIsStable(t *testing.T) {
	l := readyListing(t, entry("x.png", 0, 0, 10), entry("y.png", 1, 1, 10), entry("z.png", 2, 2, 5))
	l.SortBy(types.SortSize, true)
	assert.Equal(t, []string{"z.png", "x.png", "y.png"}, names(l))
	l.SortBy(types.SortSize, false)
	assert.Equal(t, []string{"x.png", "y.png", "z.png"}, names(l))
}

func TestSortByNoop(t *testing.T) {
	empty := readyListing(t)
	empty.SortBy(types.SortSize, true)
	assert.True(t, empty.IsEmpty())

	l := readyListing(t, entry("b.png", 0, 0, 2), entry("a.png", 1, 1, 1))
	l.SortBy(types.SortNone, true)
	assert.Equal(t, []string{"b.png", "a.png"}, names(l))
}

func TestSortToggle(t *testing.T) {
	l := readyListing(t, entry("a.png", 1, 0, 30), entry("b.png", 2, 0, 10), entry("c.png", 3, 0, 20))
	spec := types.DefaultSortSpec()

	assert.True(t, l.Sort(&spec, types.SortSize))
	assert.Equal(t, []string{"b.png", "c.png", "a.png"}, names(l))
	assert.False(t, l.Sort(&spec, types.SortSize))
	assert.Equal(t, []string{"a.png", "c.png", "b.png"}, names(l))
	assert.True(t, l.Sort(&spec, types.SortSize))
	assert.Equal(t, []string{"b.png", "c.png", "a.png"}, names(l))
	assert.False(t, l.Sort(&spec, types.SortSize))

	// Another field in between leaves size's remembered direction alone.
	assert.True(t, l.Sort(&spec, types.SortModTime))
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, names(l))
	assert.False(t, l.Sort(&spec, types.SortSize), "size resumes descending")
	assert.Equal(t, []string{"a.png", "c.png", "b.png"}, names(l))
	assert.True(t, spec.Ascending(types.SortModTime))
	assert.Equal(t, types.SortSize, spec.Active)
}

// The three files share a directory; c.gif and b.jpg share a modify time
// and c.gif was created first.
func TestDefaultSortEndToEnd(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		l := readyListing(t,
			entry("b.jpg", 2, 5, 1),
			entry("a.png", 1, 1, 1),
			entry("c.gif", 2, 3, 1),
		)
		spec := types.DefaultSortSpec()
		l.Sort(&spec, types.SortModTime)
		assert.Equal(t, []string{"a.png", "c.gif", "b.jpg"}, names(l))
	})

	t.Run("filesystem", func(t *testing.T) {
		dir := t.TempDir()
		c := testutils.WriteImage(t, dir, "c.gif", 1, 1)
		time.Sleep(20 * time.Millisecond)
		b := testutils.WriteImage(t, dir, "b.jpg", 1, 1)
		a := testutils.WriteImage(t, dir, "a.png", 1, 1)

		bc, bb := fsmeta.BirthTime(c, nil), fsmeta.BirthTime(b, nil)
		if bc.IsZero() || !bc.Before(bb) {
			t.Skip("filesystem does not record distinct birth times")
		}

		testutils.SetModTime(t, a, at(1))
		testutils.SetModTime(t, b, at(2))
		testutils.SetModTime(t, c, at(2))

		l := New()
		require.Equal(t, NotReady, l.BeginPath(dir))
		state, err := l.ScanDirectory()
		require.NoError(t, err)
		require.Equal(t, Ready, state)

		spec := types.DefaultSortSpec()
		l.Sort(&spec, types.SortModTime)
		assert.Equal(t, []string{"a.png", "c.gif", "b.jpg"}, names(l))
	})
}
