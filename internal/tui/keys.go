package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause    key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Dismiss  key.Binding
	Save     key.Binding
	NextSort key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pause:    key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Faster:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Dismiss:  key.NewBinding(key.WithKeys("d", "enter"), key.WithHelp("d", "dismiss event")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		NextSort: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sort")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Dismiss, k.Save, k.NextSort, k.Up, k.Quit}
}
