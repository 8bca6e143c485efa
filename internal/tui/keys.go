package tui

import "github.com/charmbracelet/bubbles/key"

// pagerKeys holds key bindings for the address book pager.
type pagerKeys struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns the pager bindings for the help bar.
func (k pagerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp returns the pager bindings grouped for expanded help.
func (k pagerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.First, k.Last},
		{k.Help, k.Quit},
	}
}

// PagerKeyMap returns the key bindings for the pager.
func PagerKeyMap() pagerKeys {
	return pagerKeys{
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first page"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last page"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
