package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Tap       key.Binding
	Root      key.Binding
	Scale     key.Binding
	Highlight key.Binding
	Labels    key.Binding
	Close     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "fret down")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "fret up")),
		Tap:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play / select")),
		Root:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "root")),
		Scale:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scale")),
		Highlight: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "highlight")),
		Labels:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "degrees/notes")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Root, k.Scale, k.Highlight, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Tap, k.Root, k.Scale, k.Highlight},
		{k.Labels, k.Close, k.Help, k.Quit},
	}
}
