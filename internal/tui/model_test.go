package tui

import (
	"testing"
	"time"

	"imgview/internal/config"
	"imgview/internal/listing"
	"imgview/internal/session"
	"imgview/internal/tui/common"
	"imgview/internal/tui/messages"
	"imgview/pkg/testutils"
	"imgview/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	dir := t.TempDir()
	for i, name := range []string{"a.png", "b.png", "c.png"} {
		p := testutils.WriteImage(t, dir, name, 2+i, 2)
		testutils.SetModTime(t, p, time.Unix(int64(1000+i), 0))
	}

	ctrl, err := session.New(config.NewTestConfig())
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	m := New(ctrl)
	require.Equal(t, listing.Ready, ctrl.OpenSync(dir))
	m.refresh()
	return m, dir
}

// command types ":"+text in normal mode and, when enter is set, runs it.
func command(m *Model, text string, enter bool) tea.Cmd {
	cmd := send(m, runes(":"), runes(text))
	if enter {
		cmd = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	return cmd
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModelInitialization(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, common.Normal, m.Mode())
	assert.Equal(t, "[1/3] a.png", m.Snapshot().Title)
	assert.Len(t, m.Entries(), 3)
	assert.NotNil(t, m.Init())
}

func TestNavigationKeys(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, runes("j"))
	assert.Equal(t, "[2/3] b.png", m.Snapshot().Title)

	send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "[3/3] c.png", m.Snapshot().Title)

	send(m, runes("j"))
	assert.Equal(t, "[3/3] c.png", m.Snapshot().Title, "stays on the last entry")

	send(m, runes("k"))
	assert.Equal(t, "[2/3] b.png", m.Snapshot().Title)

	send(m, runes("g"), runes("g"))
	assert.Equal(t, "[1/3] a.png", m.Snapshot().Title)

	send(m, runes("G"))
	assert.Equal(t, "[3/3] c.png", m.Snapshot().Title)

	send(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, "[1/3] a.png", m.Snapshot().Title)
}

func TestMouseWheelNavigates(t *testing.T) {
	m, _ := newTestModel(t)
	wheel := func(b tea.MouseButton) tea.MouseMsg {
		return tea.MouseMsg{Button: b, Action: tea.MouseActionPress}
	}

	send(m, wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, "[2/3] b.png", m.Snapshot().Title)

	send(m, wheel(tea.MouseButtonWheelDown), wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, "[3/3] c.png", m.Snapshot().Title)

	send(m, wheel(tea.MouseButtonWheelUp))
	assert.Equal(t, "[2/3] b.png", m.Snapshot().Title)

	send(m, tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, "[2/3] b.png", m.Snapshot().Title, "clicks do not navigate")
}

func TestSortKeys(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, runes("m"))
	assert.Equal(t, "MT↓", m.Snapshot().SortLabel(types.SortModTime))
	assert.Equal(t, "c.png", m.Entries()[0].Name)

	send(m, runes("s"))
	assert.Equal(t, "SZ↑", m.Snapshot().SortLabel(types.SortSize))
	assert.Equal(t, types.SortSize, m.Snapshot().Sort.Active)

	send(m, runes("b"))
	assert.Equal(t, types.SortBirthTime, m.Snapshot().Sort.Active)
}

func TestCommandMode(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, runes(":"))
	require.Equal(t, common.Command, m.Mode())
	send(m, runes("sort"), tea.KeyMsg{Type: tea.KeySpace}, runes("mtime"), tea.KeyMsg{Type: tea.KeySpace}, runes("desc"))
	assert.Equal(t, ":sort mtime desc", m.CommandBuffer())

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, common.Normal, m.Mode())
	assert.Equal(t, "c.png", m.Entries()[0].Name)
	assert.Equal(t, "MT↓", m.Snapshot().SortLabel(types.SortModTime))

	command(m, "bogus", true)
	assert.Equal(t, "unknown command: bogus", m.StatusMsg())

	command(m, "sort colour", true)
	assert.Contains(t, m.StatusMsg(), "unknown sort field")

	command(m, "abc", false)
	send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, ":ab", m.CommandBuffer())
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, common.Normal, m.Mode())
	assert.Empty(t, m.CommandBuffer())
}

func TestOpenCommand(t *testing.T) {
	m, _ := newTestModel(t)
	other := t.TempDir()
	testutils.WriteImage(t, other, "only.png", 2, 2)

	command(m, "open "+other, true)
	m.ctrl.WaitIdle()
	m.refresh()

	assert.Equal(t, "[1/1] only.png", m.Snapshot().Title)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := send(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	cmd = command(m, "q", true)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewMessagesUpdateModel(t *testing.T) {
	m, _ := newTestModel(t)

	v := m.Snapshot()
	v.Label = session.LabelParsing
	cmd := send(m, messages.ViewMsg{View: v})
	assert.NotNil(t, cmd, "keeps listening for changes")
	assert.Contains(t, testutils.StripANSI(m.StatusLine()), session.LabelParsing)

	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.Width())
	assert.Equal(t, 40, m.Height())
}

func TestPushCoalesces(t *testing.T) {
	m, _ := newTestModel(t)

	m.push(session.View{Title: "first"})
	m.push(session.View{Title: "second"})

	msg := m.waitForChange()()
	assert.Equal(t, "second", msg.(messages.ViewMsg).View.Title)
}

func TestRender(t *testing.T) {
	m, _ := newTestModel(t)

	out := testutils.StripANSI(m.View())
	assert.Contains(t, out, "[1/3] a.png")
	assert.Contains(t, out, "> a.png")
	assert.Contains(t, out, "MT↑")
	assert.Contains(t, out, "Size:")
}
