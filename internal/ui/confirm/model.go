package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/theme"
)

// ConfirmedMsg is dispatched when the user agrees to unsubscribe.
type ConfirmedMsg struct {
	EmailID string
}

// CancelMsg is dispatched when the user declines or aborts.
type CancelMsg struct {
	EmailID string
}

// bindings holds the answer on the heap so that huh's Value() pointer
// remains valid across Bubble Tea model copies.
type bindings struct {
	confirmed bool
}

// Model asks for confirmation before an unsubscribe request is sent.
type Model struct {
	form   *huh.Form
	b      *bindings
	record model.EmailRecord
	width  int
	height int
}

// New creates an idle confirmation prompt.
func New(width, height int) Model {
	return Model{
		b:      &bindings{},
		width:  width,
		height: height,
	}
}

// Start asks about rec.
func (m *Model) Start(rec model.EmailRecord) tea.Cmd {
	m.record = rec
	m.b.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Unsubscribe from %s?", sender(rec))).
				Description(rec.Subject).
				Affirmative("Unsubscribe").
				Negative("Cancel").
				Value(&m.b.confirmed),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
	return m.form.Init()
}

// Pending returns the email awaiting an answer.
func (m Model) Pending() (model.EmailRecord, bool) {
	return m.record, m.form != nil
}

// Update handles messages for the prompt.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.finish(m.b.confirmed)
	case huh.StateAborted:
		return m.finish(false)
	}
	return m, cmd
}

// Abort drops the pending question without sending anything.
func (m Model) Abort() (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	return m.finish(false)
}

// finish clears the prompt and reports the answer for the pending email.
func (m Model) finish(confirmed bool) (Model, tea.Cmd) {
	id := m.record.ID
	m.form = nil
	m.record = model.EmailRecord{}
	if confirmed {
		return m, func() tea.Msg { return ConfirmedMsg{EmailID: id} }
	}
	return m, func() tea.Msg { return CancelMsg{EmailID: id} }
}

// View renders the prompt.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Confirm")

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(title + "\n" + m.form.View())
}

// SetSize updates the prompt dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func sender(rec model.EmailRecord) string {
	if rec.Sender == "" {
		return "this sender"
	}
	return rec.Sender
}
