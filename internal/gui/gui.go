//go:build !nogui

// Package gui is the fyne image viewer window.
package gui

// Create returns a new GUI instance
func (f *Factory) Create() (Interface, error) {
	return NewApp(f.config, f.ctrl), nil
}

// Start opens the viewer window on path and blocks until it is closed.
func Start(f *Factory, path string) error {
	g, err := f.Create()
	if err != nil {
		return err
	}
	g.Run(path)
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
