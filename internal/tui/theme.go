package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines TUI colors and styles.
type Theme struct {
	Primary lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color

	TitleStyle   lipgloss.Style
	ItemStyle    lipgloss.Style
	DetailStyle  lipgloss.Style
	NumberStyle  lipgloss.Style
	DialogStyle  lipgloss.Style
	ButtonStyle  lipgloss.Style
	DisabledBtn  lipgloss.Style
	BannerStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	MutedStyle   lipgloss.Style
}

// DarkTheme is the default theme.
func DarkTheme() Theme {
	t := Theme{
		Primary: lipgloss.Color("#7C3AED"),
		Danger:  lipgloss.Color("#EF4444"),
		Success: lipgloss.Color("#10B981"),
		Muted:   lipgloss.Color("#6B7280"),
		Text:    lipgloss.Color("#E5E7EB"),
		Border:  lipgloss.Color("#374151"),
	}

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Padding(0, 1)

	t.ItemStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.DetailStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.NumberStyle = lipgloss.NewStyle().
		Foreground(t.Primary)

	t.DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	t.ButtonStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Primary).
		Padding(0, 2)

	t.DisabledBtn = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Border).
		Padding(0, 2)

	t.BannerStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Border).
		Padding(0, 1)

	t.ErrorStyle = lipgloss.NewStyle().Foreground(t.Danger)
	t.SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	t.MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)

	return t
}
