package types

import (
	"fmt"
	"strings"
)

// SortField names the FileEntry field a listing is ordered by.
type SortField int

const (
	SortNone SortField = iota
	SortModTime
	SortBirthTime
	SortSize
)

// String returns the short name used in config files and on the command line.
func (f SortField) String() string {
	switch f {
	case SortModTime:
		return "mtime"
	case SortBirthTime:
		return "btime"
	case SortSize:
		return "size"
	default:
		return "none"
	}
}

// Label returns the two-letter button label for the field.
func (f SortField) Label() string {
	switch f {
	case SortModTime:
		return "MT"
	case SortBirthTime:
		return "BT"
	case SortSize:
		return "SZ"
	default:
		return ""
	}
}

// ParseSortField converts a config/flag value into a SortField.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "mtime", "modtime", "modified":
		return SortModTime, nil
	case "btime", "birthtime", "ctime", "created":
		return SortBirthTime, nil
	case "size":
		return SortSize, nil
	}
	return SortNone, fmt.Errorf("unknown sort field: %q", s)
}

// SortSpec records which field is active and the last direction used for
// every field. It is owned by the session controller and handed to the
// listing on each sort request.
type SortSpec struct {
	Active SortField

	ModTimeAsc   bool
	BirthTimeAsc bool
	SizeAsc      bool
}

// DefaultSortSpec returns a spec with no active field and every field ascending.
func DefaultSortSpec() SortSpec {
	return SortSpec{
		Active:       SortNone,
		ModTimeAsc:   true,
		BirthTimeAsc: true,
		SizeAsc:      true,
	}
}

// Ascending reports the remembered direction of field.
func (s *SortSpec) Ascending(field SortField) bool {
	switch field {
	case SortModTime:
		return s.ModTimeAsc
	case SortBirthTime:
		return s.BirthTimeAsc
	case SortSize:
		return s.SizeAsc
	}
	return true
}

func (s *SortSpec) setAscending(field SortField, asc bool) {
	switch field {
	case SortModTime:
		s.ModTimeAsc = asc
	case SortBirthTime:
		s.BirthTimeAsc = asc
	case SortSize:
		s.SizeAsc = asc
	}
}

// Resolve returns the direction to sort field by and records it.
// Requesting the already active field flips its direction; any other field
// reuses its own remembered direction and becomes active.
func (s *SortSpec) Resolve(field SortField) bool {
	asc := s.Ascending(field)
	if field == s.Active {
		asc = !asc
	}
	s.Active = field
	s.setAscending(field, asc)
	return asc
}

// ResolveExplicit makes field active with the given direction.
func (s *SortSpec) ResolveExplicit(field SortField, asc bool) bool {
	s.Active = field
	s.setAscending(field, asc)
	return asc
}

// Indicator returns the direction arrow for field when it is the active one.
func (s *SortSpec) Indicator(field SortField) string {
	if field == SortNone || field != s.Active {
		return ""
	}
	if s.Ascending(field) {
		return "↑"
	}
	return "↓"
}
