package components

import (
	"fmt"
	"strings"

	"imgview/internal/tui/styles"
	"imgview/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const (
	sizeColumn = 10
	timeColumn = 16
)

// FileList renders a window of entries around the cursor.
type FileList struct {
	files  []types.FileEntry
	cursor int
	width  int
	height int
}

func NewFileList() *FileList {
	return &FileList{width: 80, height: 10}
}

func (fl *FileList) SetFiles(files []types.FileEntry) {
	fl.files = files
}

// SetCursor marks entry i as selected; -1 selects nothing.
func (fl *FileList) SetCursor(i int) {
	fl.cursor = i
}

func (fl *FileList) SetSize(width, height int) {
	if width > 0 {
		fl.width = width
	}
	if height > 0 {
		fl.height = height
	}
}

// Window returns the half-open range of entries that fit, keeping the
// cursor roughly centred.
func (fl *FileList) Window() (int, int) {
	n := len(fl.files)
	if n <= fl.height {
		return 0, n
	}
	start := fl.cursor - fl.height/2
	start = max(0, min(start, n-fl.height))
	return start, start + fl.height
}

func (fl *FileList) View() string {
	if len(fl.files) == 0 {
		return styles.Theme.Status.Render("No images") + "\n"
	}

	nameWidth := max(8, fl.width-sizeColumn-timeColumn-6)

	var s strings.Builder
	start, end := fl.Window()
	for i := start; i < end; i++ {
		f := fl.files[i]
		name := runewidth.FillRight(runewidth.Truncate(f.Name, nameWidth, "…"), nameWidth)
		row := fmt.Sprintf("%s  %*s  %s", name, sizeColumn, humanize.IBytes(uint64(f.Size)), f.ModTime.Local().Format("2006-01-02 15:04"))
		if i == fl.cursor {
			s.WriteString(styles.Theme.Selected.Render("> " + row))
		} else {
			s.WriteString(styles.Theme.Unselected.Render("  " + row))
		}
		s.WriteString("\n")
	}
	return s.String()
}
