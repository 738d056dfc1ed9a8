package views

import (
	"strings"

	"imgview/internal/listing"
	"imgview/internal/session"
	"imgview/internal/tui/common"
	"imgview/internal/tui/components"
	"imgview/internal/tui/styles"

	"github.com/mattn/go-runewidth"
)

// chrome is the number of lines around the file list: title, sort bar,
// label, status, message and help.
const chrome = 8

func RenderMainView(m common.ModelReader) string {
	v := m.Snapshot()
	width := max(20, m.Width()-2)

	var sb strings.Builder

	title := v.Title
	if title == "" {
		title = "imgview"
	}
	sb.WriteString(styles.Theme.Title.Render(runewidth.Truncate(title, width-2, "…")))
	sb.WriteString("\n")
	sb.WriteString(renderSortBar(v))
	sb.WriteString("\n\n")

	if line := m.StatusLine(); line != "" {
		sb.WriteString(styles.Theme.Label.Render(line))
		sb.WriteString("\n")
	} else if v.State == listing.NotExists {
		sb.WriteString(styles.Theme.Error.Render("Path not found"))
		sb.WriteString("\n")
	}

	if v.State == listing.Ready || v.State == listing.Preview || v.State == listing.Unsupported {
		fileList := components.NewFileList()
		fileList.SetFiles(m.Entries())
		fileList.SetCursor(v.Position - 1)
		fileList.SetSize(width, max(3, m.Height()-chrome))
		sb.WriteString(fileList.View())
	}

	if v.Status != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Theme.Status.Render(runewidth.Truncate(v.Status, width, "…")))
	}

	switch {
	case m.Mode() == common.Command:
		sb.WriteString("\n" + m.CommandBuffer())
	case m.StatusMsg() != "":
		sb.WriteString("\n" + styles.Theme.Error.Render(m.StatusMsg()))
	}

	sb.WriteString("\n" + m.HelpView())

	return styles.Theme.App.Render(sb.String())
}

func renderSortBar(v session.View) string {
	parts := make([]string, 0, len(session.SortFields))
	for _, field := range session.SortFields {
		label := v.SortLabel(field)
		if v.Sort.Active == field {
			parts = append(parts, styles.Theme.SortActive.Render(label))
		} else {
			parts = append(parts, styles.Theme.Unselected.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}
