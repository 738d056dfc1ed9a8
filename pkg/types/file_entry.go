package types

import (
	"fmt"
	"strings"
	"time"
)

// FileEntry is a snapshot of one image file taken during a directory scan.
// Entries are compared by Name only; names are unique within one scan.
type FileEntry struct {
	Name      string    `json:"name"`
	ModTime   time.Time `json:"mtime"`
	BirthTime time.Time `json:"btime"`
	Size      int64     `json:"size"`
}

// String returns a human-readable representation
func (f FileEntry) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", f.Name))
	sb.WriteString(fmt.Sprintf("Size: %d bytes\n", f.Size))
	sb.WriteString(fmt.Sprintf("Modified: %s\n", f.ModTime.UTC().Format(time.RFC3339Nano)))
	if !f.BirthTime.IsZero() {
		sb.WriteString(fmt.Sprintf("Created: %s\n", f.BirthTime.UTC().Format(time.RFC3339Nano)))
	}
	return sb.String()
}
