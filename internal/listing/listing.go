// Package listing keeps the ordered, filtered view of one directory's images
// together with the selection cursor and the loading state machine.
//
// A Listing is single-writer: BeginPath, ScanDirectory, ApplyScan, Reload,
// the sort methods and navigation must be serialised by the caller. Overlapping
// mutations panic with errors.ErrConcurrentMutate.
package listing

import (
	"path/filepath"
	"sync/atomic"

	"imgview/internal/codec"
	serr "imgview/internal/errors"
	"imgview/internal/log"
	"imgview/pkg/types"

	"github.com/gobwas/glob"
	"golang.org/x/text/unicode/norm"
)

// Listing is the image list of the active directory.
type Listing struct {
	exts    *codec.ExtensionSet
	exclude []glob.Glob

	dirPath  string
	entries  []types.FileEntry
	selected int
	state    State

	// last order applied by SortBy, reused by Reload
	order    types.SortField
	orderAsc bool

	busy atomic.Bool
}

// Option configures a Listing.
type Option func(*Listing)

// WithExtensions replaces the default supported-extension set.
func WithExtensions(set *codec.ExtensionSet) Option {
	return func(l *Listing) {
		if set != nil {
			l.exts = set
		}
	}
}

// WithExclude drops files whose name matches any of the glob patterns from
// scans. Patterns that do not compile are logged and ignored.
func WithExclude(patterns ...string) Option {
	return func(l *Listing) {
		for _, p := range patterns {
			g, err := glob.Compile(p)
			if err != nil {
				log.LogWithFields(log.F("pattern", p), log.F("error", err.Error())).Warn("ignoring invalid exclude pattern")
				continue
			}
			l.exclude = append(l.exclude, g)
		}
	}
}

// New returns an Empty listing.
func New(opts ...Option) *Listing {
	l := &Listing{state: Empty}
	for _, opt := range opts {
		opt(l)
	}
	if l.exts == nil {
		l.exts = codec.NewExtensionSet()
	}
	return l
}

// enter marks the start of a mutation. A second concurrent mutation is a
// caller bug and fails loudly.
func (l *Listing) enter() {
	if !l.busy.CompareAndSwap(false, true) {
		panic(serr.ErrConcurrentMutate)
	}
}

func (l *Listing) leave() {
	l.busy.Store(false)
}

// State returns the current loading state.
func (l *Listing) State() State {
	return l.state
}

// DirPath returns the absolute path of the listed directory.
func (l *Listing) DirPath() string {
	return l.dirPath
}

// Count returns the number of entries.
func (l *Listing) Count() int {
	return len(l.entries)
}

// IsEmpty reports whether the listing has no entries.
func (l *Listing) IsEmpty() bool {
	return len(l.entries) == 0
}

// Entries returns a copy of the entries in display order.
func (l *Listing) Entries() []types.FileEntry {
	out := make([]types.FileEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Selected returns the entry under the cursor.
func (l *Listing) Selected() (types.FileEntry, bool) {
	if len(l.entries) == 0 {
		return types.FileEntry{}, false
	}
	return l.entries[l.selected], true
}

// SelectedIndex returns the zero-based cursor position.
func (l *Listing) SelectedIndex() int {
	return l.selected
}

// Position returns the one-based cursor position, or 0 when empty.
func (l *Listing) Position() int {
	if len(l.entries) == 0 {
		return 0
	}
	return l.selected + 1
}

// SelectedPath returns the full path of the selected entry, or "".
func (l *Listing) SelectedPath() string {
	e, ok := l.Selected()
	if !ok {
		return ""
	}
	return l.PathOf(e)
}

// PathOf joins the listed directory and the entry name.
func (l *Listing) PathOf(e types.FileEntry) string {
	return filepath.Join(l.dirPath, e.Name)
}

// IndexOf returns the index of the entry called name, or -1. Names are
// compared in Unicode normal form C.
func (l *Listing) IndexOf(name string) int {
	return indexOf(l.entries, name)
}

// Supports reports whether name has a supported extension.
func (l *Listing) Supports(name string) bool {
	return l.exts.Match(name)
}

func indexOf(entries []types.FileEntry, name string) int {
	want := norm.NFC.String(name)
	for i, e := range entries {
		if e.Name == name || norm.NFC.String(e.Name) == want {
			return i
		}
	}
	return -1
}

// NeighborPaths returns the paths of the entries in the inclusive window
// [selected-left, selected+right], clamped to the listing bounds.
func (l *Listing) NeighborPaths(left, right int) []string {
	count := len(l.entries)
	if count == 0 {
		return []string{}
	}
	from := max(l.selected-max(left, 0), 0)
	to := min(l.selected+max(right, 0), count-1)

	paths := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		paths = append(paths, l.PathOf(l.entries[i]))
	}
	return paths
}
