//go:build nogui

package gui

import (
	"fmt"
)

// Create fails in builds without the GUI.
func (f *Factory) Create() (Interface, error) {
	return nil, fmt.Errorf("GUI not available in this build")
}

// Start is a stub implementation for builds with GUI disabled
func Start(f *Factory, path string) error {
	fmt.Println("GUI is disabled in this build. Use `imgview tui` instead.")
	return fmt.Errorf("GUI not available in this build")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
