package listing

import (
	"slices"
	"time"

	"imgview/internal/log"
	"imgview/pkg/types"
)

// SortBy orders the entries by field in the given direction. The selected
// entry stays selected. Modify-time ties are broken by birth time ascending
// whatever the direction; other ties keep their previous relative order.
func (l *Listing) SortBy(field types.SortField, asc bool) {
	l.enter()
	defer l.leave()

	if field == types.SortNone {
		return
	}
	l.order, l.orderAsc = field, asc
	if len(l.entries) == 0 {
		return
	}
	start := time.Now()
	selected := l.entries[l.selected].Name

	slices.SortStableFunc(l.entries, comparator(field, asc))

	if i := indexOf(l.entries, selected); i >= 0 {
		l.selected = i
	}

	log.LogWithFields(
		log.F("field", field.String()),
		log.F("asc", asc),
		log.F("entries", len(l.entries)),
		log.F("duration_ms", time.Since(start).Milliseconds()),
	).Debug("sorted listing")
}

// Sort resolves the direction for field through spec, recording it there,
// and sorts. Sorting the active field again flips its direction.
func (l *Listing) Sort(spec *types.SortSpec, field types.SortField) bool {
	asc := spec.Resolve(field)
	l.SortBy(field, asc)
	return asc
}

func comparator(field types.SortField, asc bool) func(a, b types.FileEntry) int {
	dir := func(c int) int {
		if asc {
			return c
		}
		return -c
	}
	switch field {
	case types.SortSize:
		return func(a, b types.FileEntry) int {
			return dir(compareInt64(a.Size, b.Size))
		}
	case types.SortBirthTime:
		return func(a, b types.FileEntry) int {
			return dir(a.BirthTime.Compare(b.BirthTime))
		}
	default:
		return func(a, b types.FileEntry) int {
			if c := a.ModTime.Compare(b.ModTime); c != 0 {
				return dir(c)
			}
			return a.BirthTime.Compare(b.BirthTime)
		}
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
