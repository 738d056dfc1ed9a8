//go:build !nogui

package gui

import (
	"image/color"

	"imgview/internal/codec"
	"imgview/internal/config"
	"imgview/internal/log"
	"imgview/internal/session"
	"imgview/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	ctrl       *session.Controller

	viewer      *wheelArea
	image       *canvas.Image
	label       *widget.Label
	status      *widget.Label
	sortButtons map[types.SortField]*widget.Button
	firstButton *widget.Button
	prevButton  *widget.Button
	nextButton  *widget.Button
	lastButton  *widget.Button

	shown *codec.Bitmap // bitmap currently on the canvas

	bgColor color.NRGBA
}

// NewApp creates a new GUI application
func NewApp(cfg *config.Config, ctrl *session.Controller) *App {
	return newApp(app.NewWithID("io.github.imgview"), cfg, ctrl)
}

func newApp(fyneApp fyne.App, cfg *config.Config, ctrl *session.Controller) *App {
	a := &App{
		fyneApp:     fyneApp,
		cfg:         cfg,
		ctrl:        ctrl,
		sortButtons: make(map[types.SortField]*widget.Button),
		bgColor:     color.NRGBA{R: 16, G: 16, B: 16, A: 255},
	}
	a.mainWindow = a.fyneApp.NewWindow("imgview")
	a.setupMainWindow()
	ctrl.OnChange(a.render)
	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run shows the window, opens path when given and blocks until the window
// is closed.
func (a *App) Run(path string) {
	a.mainWindow.Show()
	if path != "" {
		a.open(path)
	}
	a.fyneApp.Run()
	a.ctrl.Close()
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.mainWindow.Resize(fyne.NewSize(float32(a.cfg.Viewer.WindowWidth), float32(a.cfg.Viewer.WindowHeight)))

	a.image = canvas.NewImageFromImage(nil)
	a.image.FillMode = canvas.ImageFillContain
	a.image.ScaleMode = canvas.ImageScaleSmooth

	a.label = widget.NewLabelWithStyle("Drop an image or a folder here", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	background := canvas.NewRectangle(a.bgColor)
	a.viewer = newWheelArea(container.NewStack(background, a.image, container.NewCenter(a.label)), a.handleScroll)

	content := container.NewBorder(
		a.createToolbar(),
		a.createStatusBar(),
		nil,
		nil,
		a.viewer,
	)
	a.mainWindow.SetContent(content)

	a.mainWindow.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		a.handleDrop(uris)
	})
	a.setupKeys()
	a.render(a.ctrl.View())
}

// createToolbar creates the open and sort controls
func (a *App) createToolbar() fyne.CanvasObject {
	openFile := widget.NewButtonWithIcon("", theme.FileImageIcon(), a.showOpenFile)
	openDir := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.showOpenFolder)

	bar := container.NewHBox(openFile, openDir, layout.NewSpacer())
	for _, field := range session.SortFields {
		field := field
		b := widget.NewButton(field.Label(), func() {
			a.ctrl.SortBy(field)
		})
		a.sortButtons[field] = b
		bar.Add(b)
	}
	return bar
}

// createStatusBar creates the navigation buttons and the file status line
func (a *App) createStatusBar() fyne.CanvasObject {
	a.status = widget.NewLabel("")
	a.status.Truncation = fyne.TextTruncateEllipsis

	a.firstButton = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), func() { a.ctrl.First() })
	a.prevButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { a.ctrl.Prev() })
	a.nextButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { a.ctrl.Next() })
	a.lastButton = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), func() { a.ctrl.Last() })

	return container.NewBorder(nil, nil,
		container.NewHBox(a.firstButton, a.prevButton, a.nextButton, a.lastButton),
		nil,
		a.status,
	)
}

func (a *App) setupKeys() {
	c := a.mainWindow.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyRight, fyne.KeyDown, fyne.KeySpace, fyne.KeyPageDown:
			a.ctrl.Next()
		case fyne.KeyLeft, fyne.KeyUp, fyne.KeyBackspace, fyne.KeyPageUp:
			a.ctrl.Prev()
		case fyne.KeyHome:
			a.ctrl.First()
		case fyne.KeyEnd:
			a.ctrl.Last()
		case fyne.KeyF5:
			a.ctrl.Rescan()
		}
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.showOpenFile()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyQ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.fyneApp.Quit()
	})
}

// handleScroll steps back on wheel up and forward on wheel down.
func (a *App) handleScroll(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		a.ctrl.Prev()
	case ev.Scrolled.DY < 0:
		a.ctrl.Next()
	}
}

func (a *App) showOpenFile() {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			a.ShowError("Open", err)
			return
		}
		if r == nil {
			return
		}
		path := uriPath(r.URI())
		_ = r.Close()
		a.open(path)
	}, a.mainWindow)
}

func (a *App) showOpenFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			a.ShowError("Open", err)
			return
		}
		if uri == nil {
			return
		}
		a.open(uriPath(uri))
	}, a.mainWindow)
}

// handleDrop opens the first local file or folder dropped on the window.
func (a *App) handleDrop(uris []fyne.URI) {
	for _, u := range uris {
		if p := uriPath(u); p != "" {
			a.open(p)
			return
		}
	}
}

func (a *App) open(path string) {
	log.LogWithFields(log.F("path", path)).Debug("opening")
	a.ctrl.Open(path)
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithError(err).Warn(title)
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}
