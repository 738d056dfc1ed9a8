package session

import (
	"fmt"
	"time"

	"imgview/internal/codec"
	"imgview/internal/listing"
	"imgview/pkg/types"

	"github.com/dustin/go-humanize"
)

// TimeLayout is the layout of timestamps in the status line, always UTC.
const TimeLayout = "2006.01.02 15:04:05.000"

// SortFields lists the sortable fields in button order.
var SortFields = []types.SortField{types.SortModTime, types.SortBirthTime, types.SortSize}

// View is an immutable snapshot of what a presenter should show.
type View struct {
	State    listing.State
	Dir      string
	Title    string
	Status   string
	Label    string
	Path     string
	Entry    types.FileEntry
	HasEntry bool
	Bitmap   *codec.Bitmap
	Position int
	Count    int
	IsFirst  bool
	IsLast   bool
	Sort     types.SortSpec
}

// SortLabel returns the button caption for field, e.g. "MT↑" when it is the
// active ascending field and "SZ" when inactive.
func (v View) SortLabel(field types.SortField) string {
	return field.Label() + v.Sort.Indicator(field)
}

// View returns the current snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	l := c.listing
	v := View{
		State:    l.State(),
		Dir:      l.DirPath(),
		Label:    c.label,
		Bitmap:   c.bitmap,
		Position: l.Position(),
		Count:    l.Count(),
		IsFirst:  l.IsFirst(),
		IsLast:   l.IsLast(),
		Sort:     c.sort,
	}
	v.Entry, v.HasEntry = l.Selected()
	if v.HasEntry {
		v.Path = l.SelectedPath()
	}

	switch {
	case v.State == listing.NotReady:
		v.Title = c.inputPath
	case v.State == listing.Preview && v.HasEntry:
		v.Title = PreviewTitle(v.Entry.Name)
	case v.HasEntry:
		v.Title = Title(v.Position, v.Count, v.Entry.Name)
	default:
		v.Title = v.Dir
	}

	if v.HasEntry {
		v.Status = Status(v.Entry, v.Bitmap)
	}
	return v
}

// Title formats "[i/n] name".
func Title(position, count int, name string) string {
	return fmt.Sprintf("[%d/%d] %s", position, count, name)
}

// PreviewTitle formats the title shown while the directory is still being
// scanned.
func PreviewTitle(name string) string {
	return fmt.Sprintf("[ ... ] %s", name)
}

// Status formats the status line for e, adding the bitmap dimensions when known.
func Status(e types.FileEntry, bm *codec.Bitmap) string {
	s := fmt.Sprintf("Size: %s,   mtime: %s,   btime: %s",
		humanize.IBytes(uint64(e.Size)), FormatTime(e.ModTime), FormatTime(e.BirthTime))
	if bm != nil {
		s += ",   " + bm.Size()
		if camera := bm.Exif.Camera(); camera != "" {
			s += ",   " + camera
		}
	}
	return s
}

// FormatTime renders t in UTC with a trailing Z, or "n/a" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "n/a"
	}
	return t.UTC().Format(TimeLayout) + "Z"
}
