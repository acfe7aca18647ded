package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathakanu/linkLater/internal/dialog"
	"github.com/pathakanu/linkLater/internal/model"
)

// Screen identifies what the app is showing.
type Screen int

const (
	ScreenList Screen = iota
	ScreenAdd
	ScreenTimePicker
)

// Reminders is the reminder service as used by the TUI.
type Reminders interface {
	Add(ctx context.Context, text string, at time.Time) (model.Reminder, error)
	List(ctx context.Context) ([]model.Reminder, error)
	Now() time.Time
}

// --- Tea Messages ---

// ListLoadedMsg carries a fresh read of the stored list.
type ListLoadedMsg struct {
	Items []model.Reminder
	Err   error
}

// ListChangedMsg signals that the stored list was written.
type ListChangedMsg struct{}

// ReminderAddedMsg reports the outcome of confirming the add dialog.
type ReminderAddedMsg struct {
	Reminder model.Reminder
	Err      error
}

// App is the main Bubble Tea model.
type App struct {
	width  int
	height int

	reminders    Reminders
	changes      <-chan struct{}
	defaultDelay time.Duration

	screen Screen
	items  []model.Reminder

	input      textinput.Model
	draft      *dialog.Draft
	pickHour   int
	pickMinute int

	status    string
	lastError string

	theme Theme
	keys  KeyMap
}

// NewApp creates the TUI. changes may be nil; sharedText, when non-empty, opens the
// add dialog pre-filled with it.
func NewApp(reminders Reminders, changes <-chan struct{}, defaultDelay time.Duration, sharedText string) App {
	ti := textinput.New()
	ti.Placeholder = "Enter reminder name"
	ti.CharLimit = 2048
	ti.Width = 48

	a := App{
		reminders:    reminders,
		changes:      changes,
		defaultDelay: defaultDelay,
		screen:       ScreenList,
		input:        ti,
		theme:        DarkTheme(),
		keys:         DefaultKeyMap(),
	}
	if sharedText != "" {
		a = a.openDialog(sharedText)
	}
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadList(), a.waitForChange(), textinput.Blink)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case ListLoadedMsg:
		if msg.Err != nil {
			a.lastError = msg.Err.Error()
			return a, nil
		}
		a.items = msg.Items
		return a, nil

	case ListChangedMsg:
		return a, tea.Batch(a.loadList(), a.waitForChange())

	case ReminderAddedMsg:
		if msg.Err != nil {
			a.lastError = msg.Err.Error()
			a.status = ""
			return a, a.loadList()
		}
		a.lastError = ""
		a.status = "Successfully created a Reminder!"
		return a, a.loadList()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenList:
			return a.updateList(msg)
		case ScreenAdd:
			return a.updateDialog(msg)
		case ScreenTimePicker:
			return a.updateTimePicker(msg), nil
		}
	}

	if a.screen == ScreenAdd {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Add):
		a = a.openDialog("")
		return a, textinput.Blink
	}
	return a, nil
}

func (a App) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Dismiss):
		a.closeDialog()
		return a, nil
	case key.Matches(msg, a.keys.PickTime):
		a.screen = ScreenTimePicker
		a.pickHour, a.pickMinute = a.draft.Time.Hour(), a.draft.Time.Minute()
		return a, nil
	case key.Matches(msg, a.keys.Confirm):
		a.draft.Text = a.input.Value()
		text, at, ok := a.draft.Confirm()
		if !ok {
			// Confirmation is disabled while the text is empty.
			return a, nil
		}
		a.closeDialog()
		return a, a.addReminder(text, at)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.draft.Text = a.input.Value()
	return a, cmd
}

func (a App) updateTimePicker(msg tea.KeyMsg) App {
	switch {
	case key.Matches(msg, a.keys.Dismiss):
		a.screen = ScreenAdd
	case key.Matches(msg, a.keys.Confirm):
		a.draft.Time = dialog.PickTime(a.pickHour, a.pickMinute, a.reminders.Now())
		a.screen = ScreenAdd
	case key.Matches(msg, a.keys.HourUp):
		a.pickHour = (a.pickHour + 1) % 24
	case key.Matches(msg, a.keys.HourDown):
		a.pickHour = (a.pickHour + 23) % 24
	case key.Matches(msg, a.keys.MinuteUp):
		a.pickMinute = (a.pickMinute + 1) % 60
	case key.Matches(msg, a.keys.MinuteDown):
		a.pickMinute = (a.pickMinute + 59) % 60
	}
	return a
}

func (a App) openDialog(text string) App {
	a.draft = dialog.NewDraft(text, a.reminders.Now(), a.defaultDelay)
	a.input.SetValue(text)
	a.input.Focus()
	a.screen = ScreenAdd
	a.status = ""
	return a
}

func (a *App) closeDialog() {
	a.input.Blur()
	a.input.Reset()
	a.draft = nil
	a.screen = ScreenList
}

func (a App) loadList() tea.Cmd {
	reminders := a.reminders
	return func() tea.Msg {
		items, err := reminders.List(context.Background())
		return ListLoadedMsg{Items: items, Err: err}
	}
}

func (a App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	changes := a.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return ListChangedMsg{}
	}
}

func (a App) addReminder(text string, at time.Time) tea.Cmd {
	reminders := a.reminders
	return func() tea.Msg {
		r, err := reminders.Add(context.Background(), text, at)
		return ReminderAddedMsg{Reminder: r, Err: err}
	}
}

func (a App) View() string {
	var sb strings.Builder
	sb.WriteString(a.theme.TitleStyle.Render("linkLater"))
	sb.WriteString("\n\n")

	switch a.screen {
	case ScreenList:
		sb.WriteString(a.renderList())
		sb.WriteString("\n")
		sb.WriteString(a.theme.MutedStyle.Render(helpLine(a.keys.Add, a.keys.Quit)))
	case ScreenAdd:
		sb.WriteString(a.renderDialog())
	case ScreenTimePicker:
		sb.WriteString(a.renderTimePicker())
	}

	if a.lastError != "" {
		sb.WriteString("\n")
		sb.WriteString(a.theme.ErrorStyle.Render("✗ " + a.lastError))
	} else if a.status != "" {
		sb.WriteString("\n")
		sb.WriteString(a.theme.SuccessStyle.Render("✓ " + a.status))
	}
	return sb.String()
}

func (a App) renderList() string {
	if len(a.items) == 0 {
		return a.theme.MutedStyle.Render("No items added yet") + "\n"
	}

	now := a.reminders.Now()
	var sb strings.Builder
	for i, item := range a.items {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			a.theme.ItemStyle.Render(item.Text),
			"  ",
			a.theme.NumberStyle.Render(fmt.Sprintf("Reminder #%d", i+1)),
		)
		sb.WriteString(row)
		sb.WriteString("\n")
		sb.WriteString(a.theme.DetailStyle.Render("Reminder scheduled for " + item.Label(now)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (a App) renderDialog() string {
	var sb strings.Builder
	sb.WriteString(a.theme.ItemStyle.Render("Add new reminder"))
	sb.WriteString("\n\n")
	sb.WriteString(a.input.View())
	sb.WriteString("\n")
	if !a.draft.CanConfirm() {
		sb.WriteString(a.theme.ErrorStyle.Render("required"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(a.theme.MutedStyle.Render(a.draft.TimeButtonLabel()))
	sb.WriteString("\n\n")

	confirm := a.theme.DisabledBtn
	if a.draft.CanConfirm() {
		confirm = a.theme.ButtonStyle
	}
	sb.WriteString(confirm.Render("Confirm"))
	sb.WriteString("\n\n")
	sb.WriteString(a.theme.MutedStyle.Render(helpLine(a.keys.Confirm, a.keys.PickTime, a.keys.Dismiss)))
	return a.theme.DialogStyle.Render(sb.String())
}

func (a App) renderTimePicker() string {
	var sb strings.Builder
	sb.WriteString(a.theme.ItemStyle.Render("Select time"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  %02d : %02d\n", a.pickHour, a.pickMinute))
	if dialog.GoesOffTomorrow(a.pickHour, a.pickMinute, a.reminders.Now()) {
		sb.WriteString("\n")
		sb.WriteString(a.theme.BannerStyle.Render("Reminder will go off tomorrow"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(a.theme.MutedStyle.Render(helpLine(a.keys.HourUp, a.keys.HourDown, a.keys.MinuteUp, a.keys.MinuteDown, a.keys.Confirm, a.keys.Dismiss)))
	return a.theme.DialogStyle.Render(sb.String())
}

// Run starts the program on the terminal and blocks until it exits.
func Run(app App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
