//go:build !nogui

package gui

import (
	"imgview/internal/codec"
	"imgview/internal/listing"
	"imgview/internal/session"
)

// render copies a session View onto the widgets.
func (a *App) render(v session.View) {
	title := v.Title
	if title == "" {
		title = "imgview"
	}
	a.mainWindow.SetTitle(title)

	a.status.SetText(v.Status)
	a.renderImage(v.Bitmap)

	switch {
	case v.Label != "":
		a.label.SetText(v.Label)
		a.label.Show()
	case v.Bitmap == nil && v.State == listing.NotExists:
		a.label.SetText("Not found")
		a.label.Show()
	case v.Bitmap == nil:
		a.label.SetText("Drop an image or a folder here")
		a.label.Show()
	default:
		a.label.Hide()
	}

	for field, b := range a.sortButtons {
		b.SetText(v.SortLabel(field))
	}

	navigable := v.State == listing.Ready
	setEnabled(a.firstButton, navigable && !v.IsFirst)
	setEnabled(a.prevButton, navigable && !v.IsFirst)
	setEnabled(a.nextButton, navigable && !v.IsLast)
	setEnabled(a.lastButton, navigable && !v.IsLast)
}

func (a *App) renderImage(bm *codec.Bitmap) {
	if bm == a.shown {
		return
	}
	a.shown = bm
	if bm == nil {
		a.image.Image = nil
		a.image.Hide()
		return
	}
	a.image.Image = codec.Fit(bm.Image, a.cfg.Viewer.MaxWidth, a.cfg.Viewer.MaxHeight)
	a.image.Show()
	a.image.Refresh()
}
