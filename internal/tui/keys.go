package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the viewer key bindings.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	First     key.Binding
	Last      key.Binding
	SortMTime key.Binding
	SortBTime key.Binding
	SortSize  key.Binding
	Rescan    key.Binding
	Command   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns vim-style bindings plus the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("j", "down", "l", "right", " ", "pgdown"),
			key.WithHelp("j/→", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up", "h", "left", "backspace", "pgup"),
			key.WithHelp("k/←", "previous"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("gg/home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "last"),
		),
		SortMTime: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sort by mtime"),
		),
		SortBTime: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "sort by btime"),
		),
		SortSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by size"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.SortMTime, k.SortBTime, k.SortSize, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.SortMTime, k.SortBTime, k.SortSize},
		{k.Rescan, k.Command, k.Help, k.Quit},
	}
}
