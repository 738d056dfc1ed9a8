package common

import (
	"imgview/internal/session"
	"imgview/pkg/types"
)

type Mode int

const (
	Normal Mode = iota
	Command
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Snapshot() session.View
	Entries() []types.FileEntry
	ShowHelp() bool
	Mode() Mode
	CommandBuffer() string
	StatusMsg() string
	StatusLine() string
	HelpView() string
	Width() int
	Height() int
}
