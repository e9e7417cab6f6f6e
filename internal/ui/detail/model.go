package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/unsubmgr/internal/keys"
	"github.com/nhle/unsubmgr/internal/render"
	"github.com/nhle/unsubmgr/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model is the email body viewer.
type Model struct {
	card     *render.Card
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, max(height-2, 0))
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view. The card's own actions
// stay reachable from here so an email can be handled after reading it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Unsubscribe):
			return m, m.activate(render.ActionUnsubscribe)

		case key.Matches(msg, m.keys.Skip):
			return m, m.activate(render.ActionSkip)
		}
	}

	// j/k, pgup/pgdn scroll the body.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) activate(kind render.ActionKind) tea.Cmd {
	if m.card == nil {
		return nil
	}
	a, ok := m.card.Action(kind)
	if !ok {
		return nil
	}
	return a.Activate()
}

// View renders the detail view.
func (m Model) View() string {
	if m.card == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No email selected")
	}
	return m.viewport.View()
}

// SetCard replaces the displayed email and scrolls to the top.
func (m *Model) SetCard(card render.Card) {
	m.card = &card
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Card returns the displayed email, if any.
func (m Model) Card() (render.Card, bool) {
	if m.card == nil {
		return render.Card{}, false
	}
	return *m.card, true
}

// Clear drops the displayed email.
func (m *Model) Clear() {
	m.card = nil
	m.viewport.SetContent("")
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 0)
	if m.card != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

func (m Model) renderContent() string {
	rec := m.card.Record
	var sections []string

	sections = append(sections, theme.SubjectStyle.Render(rec.Subject))

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	sections = append(sections,
		fmt.Sprintf("%s  %s", metaStyle.Render("From:"), valStyle.Render(rec.Sender)),
		fmt.Sprintf("%s  %s", metaStyle.Render("Date:"), valStyle.Render(rec.Date)),
	)

	var footer []string
	if m.card.Indicator != render.IndicatorNone {
		footer = append(footer, theme.IndicatorStyle(m.card.Indicator.String()).Render(m.card.Indicator.Label()))
	}
	for _, a := range m.card.Actions {
		footer = append(footer, theme.ButtonStyle(a.Kind.String(), a.Enabled()).Render(a.Kind.Label()))
	}
	if len(footer) > 0 {
		sections = append(sections, "", strings.Join(footer, " "))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	sections = append(sections, "", separator, "")

	body := rec.Body
	if strings.TrimSpace(body) == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No body")
	}
	sections = append(sections, lipgloss.NewStyle().Width(max(m.width-2, 1)).Render(body))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
