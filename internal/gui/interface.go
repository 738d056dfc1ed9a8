package gui

import (
	"imgview/internal/config"
	"imgview/internal/session"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run(path string)
	ShowError(title string, err error)
	ShowInfo(message string)
}

// Factory creates GUI instances
type Factory struct {
	config *config.Config
	ctrl   *session.Controller
}

// NewFactory creates a new GUI factory
func NewFactory(cfg *config.Config, ctrl *session.Controller) *Factory {
	return &Factory{
		config: cfg,
		ctrl:   ctrl,
	}
}
