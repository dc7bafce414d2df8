package top

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start  key.Binding
	Stop   key.Binding
	Layout key.Binding
	Quit   key.Binding
	Save   key.Binding
	Skip   key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
		key.WithHelp("1-8", "start category"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s", " "),
		key.WithHelp("s", "stop"),
	),
	Layout: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "layout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save note"),
	),
	Skip: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "skip note"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "keep running"),
	),
}

// ShortHelp is the help line outside the note prompt.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Layout, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), k.promptHelp()}
}

func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Save, k.Skip, k.Cancel}
}

// promptKeys shows the note prompt's bindings in the help bar.
type promptKeys struct{ keyMap }

func (k promptKeys) ShortHelp() []key.Binding {
	return k.promptHelp()
}
