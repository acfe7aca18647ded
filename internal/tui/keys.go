package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of every screen.
type KeyMap struct {
	Add        key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Dismiss    key.Binding
	PickTime   key.Binding
	HourUp     key.Binding
	HourDown   key.Binding
	MinuteUp   key.Binding
	MinuteDown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "add reminder"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		PickTime: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select time"),
		),
		HourUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "hour +1"),
		),
		HourDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "hour -1"),
		),
		MinuteUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "minute +1"),
		),
		MinuteDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "minute -1"),
		),
	}
}

func helpLine(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
