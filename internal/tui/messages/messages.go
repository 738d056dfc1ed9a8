package messages

import (
	"imgview/internal/session"
)

type ErrorMsg struct {
	Err error
}

// ViewMsg carries a snapshot pushed by the session controller.
type ViewMsg struct {
	View session.View
}
