package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/unsubmgr/internal/theme"
)

// Commands understood by the palette. Aliases map to the same name.
const (
	Scan         = "scan"
	Refresh      = "refresh"
	Candidates   = "candidates"
	Unsubscribed = "unsubscribed"
	Skipped      = "skipped"
	Help         = "help"
	Quit         = "quit"
)

var aliases = map[string]string{
	"scan":         Scan,
	"refresh":      Refresh,
	"reload":       Refresh,
	"candidates":   Candidates,
	"unsubscribed": Unsubscribed,
	"skipped":      Skipped,
	"help":         Help,
	"quit":         Quit,
	"q":            Quit,
}

// Names returns the canonical command names for completion.
func Names() []string {
	return []string{Scan, Refresh, Candidates, Unsubscribed, Skipped, Help, Quit}
}

// Resolve maps typed input to a canonical command name.
func Resolve(input string) (string, bool) {
	name, ok := aliases[strings.ToLower(strings.TrimSpace(input))]
	return name, ok
}

// CommandMsg is emitted when the user executes a command. It carries the
// canonical name, or the raw input when the command is unknown.
type CommandMsg struct {
	Name  string
	Known bool
}

// CancelMsg is emitted when the palette is dismissed with esc.
type CancelMsg struct{}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if raw == "" {
				return m, nil
			}
			name, known := Resolve(raw)
			if !known {
				name = raw
			}
			return m, func() tea.Msg {
				return CommandMsg{Name: name, Known: known}
			}

		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	hint := theme.HelpStyle.Render(strings.Join(Names(), " · "))

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View(), "", hint)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
