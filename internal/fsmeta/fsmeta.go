// Package fsmeta reads the platform specific file metadata the listing needs:
// birth (creation) time and the long form of a path.
package fsmeta

import (
	"os"
	"time"
)

// BirthTime returns the creation time of the file at path. info is the
// result of a prior Stat/Lstat of the same path and may be nil. A zero time
// means the platform or filesystem does not record one.
func BirthTime(path string, info os.FileInfo) time.Time {
	t := birthTime(path, info)
	if t.IsZero() || t.Unix() == 0 {
		return time.Time{}
	}
	return t
}

// LongPath expands a short (8.3) Windows path to its long form. On other
// platforms, and when expansion fails, path is returned unchanged.
func LongPath(path string) string {
	if path == "" {
		return path
	}
	return longPath(path)
}
