// Package keys defines the global key map. Command-sequence keys (the
// magit-style action chords) live in the ui package's command trie, not
// here; this map covers navigation and app control.
package keys

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PrevSibling key.Binding
	NextSibling key.Binding
	Parent      key.Binding
	WorkingCopy key.Binding
	ToggleFold  key.Binding
	Show        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Refresh     key.Binding
	Immutable   key.Binding
	Help        key.Binding
	Escape      key.Binding
	Quit        key.Binding
}

var Default = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PrevSibling: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous sibling"),
	),
	NextSibling: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next sibling"),
	),
	Parent: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "parent"),
	),
	WorkingCopy: key.NewBinding(
		key.WithKeys("@"),
		key.WithHelp("@", "go to working copy"),
	),
	ToggleFold: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "fold/unfold"),
	),
	Show: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "show change"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "refresh"),
	),
	Immutable: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "toggle --ignore-immutable"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
