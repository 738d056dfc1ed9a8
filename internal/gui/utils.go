//go:build !nogui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// uriPath returns the local filesystem path of u, or "" for other schemes.
func uriPath(u fyne.URI) string {
	if u == nil || u.Scheme() != "file" {
		return ""
	}
	return u.Path()
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// wheelArea shows content and reports mouse wheel and touchpad scrolls over it.
type wheelArea struct {
	widget.BaseWidget
	content  fyne.CanvasObject
	onScroll func(*fyne.ScrollEvent)
}

var _ fyne.Scrollable = (*wheelArea)(nil)

func newWheelArea(content fyne.CanvasObject, onScroll func(*fyne.ScrollEvent)) *wheelArea {
	w := &wheelArea{content: content, onScroll: onScroll}
	w.ExtendBaseWidget(w)
	return w
}

func (w *wheelArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.content)
}

// Scrolled implements fyne.Scrollable.
func (w *wheelArea) Scrolled(ev *fyne.ScrollEvent) {
	if w.onScroll != nil {
		w.onScroll(ev)
	}
}
