package listing

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	serr "imgview/internal/errors"
	"imgview/internal/log"
	"imgview/pkg/types"
)

// ScanEntries reads dir and returns an entry for every regular file whose
// name has a supported extension and matches no exclude pattern. Hidden files
// are included. Entries come back in directory (name) order.
//
// ScanEntries does not touch the listing state and may run on any goroutine.
func (l *Listing) ScanEntries(dir string) ([]types.FileEntry, error) {
	start := time.Now()

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		kind := serr.FileAccessDenied
		if os.IsNotExist(err) {
			kind = serr.PathNotFound
		}
		return nil, serr.NewFileError("failed to read directory", dir, kind, err)
	}

	entries := make([]types.FileEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !l.exts.Match(name) || l.excluded(name) {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := de.Info()
		if err != nil {
			continue // removed since ReadDir
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if info, err = os.Stat(path); err != nil {
				continue
			}
		}
		if !info.Mode().IsRegular() {
			continue
		}
		e := entryFromInfo(path, info)
		e.Name = name
		entries = append(entries, e)
	}

	log.LogWithFields(
		log.F("dir", dir),
		log.F("files", len(dirEntries)),
		log.F("images", len(entries)),
		log.F("duration_ms", time.Since(start).Milliseconds()),
	).Debug("scanned directory")

	return entries, nil
}

func (l *Listing) excluded(name string) bool {
	for _, g := range l.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// ScanDirectory scans the listed directory and applies the result. It only
// acts in NotReady and Preview; in other states it returns the current state.
// An unreadable directory leaves the listing Empty and returns the error.
func (l *Listing) ScanDirectory() (State, error) {
	if l.state != NotReady && l.state != Preview {
		return l.state, nil
	}
	dir := l.dirPath
	entries, err := l.ScanEntries(dir)
	return l.ApplyScan(dir, entries, err), err
}

// ApplyScan installs the result of ScanEntries(dir). Results for a directory
// other than the listed one, or arriving outside NotReady and Preview, are
// stale and ignored.
//
// When the listing was in Preview the previewed entry is kept in place of
// its scanned twin and selected; if the scan did not find it, it is dropped.
func (l *Listing) ApplyScan(dir string, entries []types.FileEntry, scanErr error) State {
	l.enter()
	defer l.leave()

	if dir != l.dirPath || (l.state != NotReady && l.state != Preview) {
		log.LogWithFields(log.F("dir", dir), log.F("state", l.state.String())).Debug("discarding stale scan")
		return l.state
	}

	var opened *types.FileEntry
	if l.state == Preview && len(l.entries) > 0 {
		e := l.entries[0]
		opened = &e
	}

	if scanErr != nil {
		log.LogWithError(scanErr).Warn("directory scan failed")
		l.entries = nil
		l.selected = 0
		l.state = Empty
		return l.state
	}

	l.entries = entries
	l.selected = 0
	if len(entries) == 0 {
		l.state = Empty
		return l.state
	}

	if opened != nil {
		if i := indexOf(l.entries, opened.Name); i >= 0 {
			l.entries[i] = *opened
			l.selected = i
		}
	}

	l.state = Ready
	return l.state
}

// Reload replaces the entries of a Ready or Empty listing with a fresh scan
// of the same directory, ordered like the last SortBy, keeping the selection
// on the same file when it still exists. Otherwise the cursor stays at the
// same index, clamped. It is a
// no-op for any other directory or state.
func (l *Listing) Reload(dir string, entries []types.FileEntry, scanErr error) State {
	l.enter()
	defer l.leave()

	if dir != l.dirPath || (l.state != Ready && l.state != Empty) {
		return l.state
	}
	if scanErr != nil {
		log.LogWithError(scanErr).Warn("directory rescan failed")
		return l.state
	}

	var selectedName string
	hadSelection := len(l.entries) > 0
	if hadSelection {
		selectedName = l.entries[l.selected].Name
	}
	prev := l.selected

	l.entries = entries
	if len(entries) == 0 {
		l.selected = 0
		l.state = Empty
		return l.state
	}
	if l.order != types.SortNone {
		slices.SortStableFunc(l.entries, comparator(l.order, l.orderAsc))
	}

	l.selected = min(prev, len(entries)-1)
	if hadSelection {
		if i := indexOf(entries, selectedName); i >= 0 {
			l.selected = i
		}
	}
	l.state = Ready
	return l.state
}
