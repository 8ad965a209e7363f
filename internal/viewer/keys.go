package viewer

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up, Down         key.Binding
	PageUp, PageDown key.Binding
	Top, Bottom      key.Binding
	ClearSelection   key.Binding

	NextRegion, PrevRegion key.Binding

	Goto, Find key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "ctrl+home"), key.WithHelp("home", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "ctrl+end"), key.WithHelp("end", "bottom")),

		ClearSelection: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),

		NextRegion: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select next region")),
		PrevRegion: key.NewBinding(key.WithKeys("p", "N"), key.WithHelp("p", "select previous region")),

		Goto: key.NewBinding(key.WithKeys("g", "G"), key.WithHelp("g", "goto offset")),
		Find: key.NewBinding(key.WithKeys("f", "F", "/"), key.WithHelp("f", "find")),
		Help: key.NewBinding(key.WithKeys("h", "H", "?"), key.WithHelp("h", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Bindings lists the bindings in help order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom,
		k.ClearSelection, k.NextRegion, k.PrevRegion,
		k.Goto, k.Find, k.Help, k.Quit,
	}
}
