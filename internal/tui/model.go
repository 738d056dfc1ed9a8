// Package tui is the terminal front end: a bubbletea program that lists the
// active directory and shows the status of the selected image.
package tui

import (
	"fmt"
	"strings"

	"imgview/internal/session"
	"imgview/internal/tui/common"
	"imgview/internal/tui/components"
	"imgview/internal/tui/messages"
	"imgview/internal/tui/views"
	"imgview/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	ctrl    *session.Controller
	changes chan session.View

	view    session.View
	entries []types.FileEntry

	keys   KeyMap
	help   help.Model
	status *components.StatusBar

	mode          common.Mode
	commandBuffer string
	statusMsg     string
	lastKey       string
	showHelp      bool
	width         int
	height        int
}

var _ common.ModelReader = (*Model)(nil)

// New creates a model bound to ctrl.
func New(ctrl *session.Controller) *Model {
	m := &Model{
		ctrl:    ctrl,
		changes: make(chan session.View, 1),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		status:  components.NewStatusBar(),
		mode:    common.Normal,
		width:   80,
		height:  24,
	}
	ctrl.OnChange(m.push)
	m.refresh()
	return m
}

// Run starts the program, opening path first when given.
func Run(ctrl *session.Controller, path string) error {
	m := New(ctrl)
	if path != "" {
		ctrl.Open(path)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// push hands v to the program, replacing any snapshot not yet consumed.
func (m *Model) push(v session.View) {
	for {
		select {
		case m.changes <- v:
			return
		default:
		}
		select {
		case <-m.changes:
		default:
		}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		return messages.ViewMsg{View: <-m.changes}
	}
}

// refresh pulls the current state from the controller.
func (m *Model) refresh() {
	m.apply(m.ctrl.View())
}

func (m *Model) apply(v session.View) {
	m.view = v
	m.entries = m.ctrl.Entries()
	m.status.SetLoading(v.Label == session.LabelParsing)
	m.status.SetText(v.Label)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.status.Tick())
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case messages.ViewMsg:
		m.apply(msg.View)
		return m, m.waitForChange()
	case messages.ErrorMsg:
		m.statusMsg = msg.Err.Error()
		return m, nil
	case spinner.TickMsg:
		return m, m.status.Update(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if m.mode == common.Command {
			return m.handleCommandMode(msg)
		}
		return m.handleNormalKeys(msg)
	}
	return m, nil
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	last := m.lastKey
	m.lastKey = k
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.ctrl.Next()
	case key.Matches(msg, m.keys.Prev):
		m.ctrl.Prev()
	case key.Matches(msg, m.keys.First):
		m.ctrl.First()
	case k == "g":
		if last == "g" {
			m.ctrl.First()
			m.lastKey = ""
		}
	case key.Matches(msg, m.keys.Last):
		m.ctrl.Last()
	case key.Matches(msg, m.keys.SortMTime):
		m.ctrl.SortBy(types.SortModTime)
	case key.Matches(msg, m.keys.SortBTime):
		m.ctrl.SortBy(types.SortBirthTime)
	case key.Matches(msg, m.keys.SortSize):
		m.ctrl.SortBy(types.SortSize)
	case key.Matches(msg, m.keys.Rescan):
		m.ctrl.Rescan()
	case key.Matches(msg, m.keys.Command):
		m.mode = common.Command
		m.commandBuffer = ":"
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}

	m.refresh()
	return m, nil
}

// handleMouse steps back on wheel up and forward on wheel down.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.Prev()
	case tea.MouseButtonWheelDown:
		m.ctrl.Next()
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m *Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.mode = common.Normal
		m.commandBuffer = ""
		return m, nil
	case tea.KeyEnter:
		cmd := strings.TrimPrefix(m.commandBuffer, ":")
		m.mode = common.Normal
		m.commandBuffer = ""
		return m, m.executeCommand(cmd)
	case tea.KeyBackspace:
		if len(m.commandBuffer) > 1 {
			r := []rune(m.commandBuffer)
			m.commandBuffer = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.commandBuffer += " "
	case tea.KeyRunes:
		m.commandBuffer += string(msg.Runes)
	}
	return m, nil
}

// executeCommand runs ":open <path>", ":sort <field> [asc|desc]",
// ":rescan" and ":q".
func (m *Model) executeCommand(cmd string) tea.Cmd {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "q", "quit":
		return tea.Quit
	case "o", "open":
		if len(fields) < 2 {
			m.statusMsg = "usage: :open <path>"
			return nil
		}
		m.ctrl.Open(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), fields[0])))
	case "sort":
		if err := m.sortCommand(fields[1:]); err != nil {
			m.statusMsg = err.Error()
			return nil
		}
	case "rescan":
		m.ctrl.Rescan()
	default:
		m.statusMsg = fmt.Sprintf("unknown command: %s", fields[0])
		return nil
	}
	m.refresh()
	return nil
}

func (m *Model) sortCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: :sort <mtime|btime|size> [asc|desc]")
	}
	field, err := types.ParseSortField(args[0])
	if err != nil {
		return err
	}
	if field == types.SortNone {
		return fmt.Errorf("cannot sort by %s", args[0])
	}
	if len(args) < 2 {
		m.ctrl.SortBy(field)
		return nil
	}
	switch args[1] {
	case "asc":
		m.ctrl.SortByExplicit(field, true)
	case "desc":
		m.ctrl.SortByExplicit(field, false)
	default:
		return fmt.Errorf("unknown direction: %s", args[1])
	}
	return nil
}

// Getters
func (m *Model) Snapshot() session.View {
	return m.view
}

func (m *Model) Entries() []types.FileEntry {
	return m.entries
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) CommandBuffer() string {
	return m.commandBuffer
}

func (m *Model) StatusMsg() string {
	return m.statusMsg
}

func (m *Model) StatusLine() string {
	return m.status.View()
}

func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

func (m *Model) Width() int {
	return m.width
}

func (m *Model) Height() int {
	return m.height
}
