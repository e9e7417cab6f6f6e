package emaillist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nhle/unsubmgr/internal/keys"
	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/render"
	"github.com/nhle/unsubmgr/internal/theme"
)

// TriggerMsg is sent when the scan trigger in a list header is activated.
type TriggerMsg struct {
	Container string
}

// OpenEmailMsg is sent when the user opens the focused email. The card
// keeps its action bindings.
type OpenEmailMsg struct {
	Card render.Card
}

// Model is a mount point that displays one email list. It lives on the
// heap so the renderer and the tab controller can hold it across Bubble
// Tea model copies.
type Model struct {
	id      string
	view    render.View
	keys    *keys.KeyMap
	spinner spinner.Model
	cursor  int
	offset  int
	active  bool
	busy    bool
	width   int
	height  int
}

// New creates an empty list mount registered under id.
func New(id string, mode model.DisplayMode, k *keys.KeyMap, width, height int) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return &Model{
		id:      id,
		view:    render.Build(nil, mode, render.Callbacks{}),
		keys:    k,
		spinner: s,
		width:   width,
		height:  height,
	}
}

// ID returns the container id of this mount.
func (m *Model) ID() string { return m.id }

// Replace discards the current content and shows v.
func (m *Model) Replace(v render.View) {
	m.view = v
	m.clampCursor()
}

// Content returns the view currently displayed.
func (m *Model) Content() render.View { return m.view }

// SetActive marks the panel as the visible one.
func (m *Model) SetActive(active bool) { m.active = active }

// Active reports whether the panel is visible.
func (m *Model) Active() bool { return m.active }

// SetBusy disables the scan trigger and relabels it while a scan runs.
// The state survives Replace so a render during a scan keeps the trigger
// disabled.
func (m *Model) SetBusy(busy bool) tea.Cmd {
	m.busy = busy
	if busy {
		return m.spinner.Tick
	}
	return nil
}

// Busy reports whether the scan trigger is disabled.
func (m *Model) Busy() bool { return m.busy }

// TriggerLabel returns the scan trigger's current label, or "" when the
// list has no trigger.
func (m *Model) TriggerLabel() string {
	if m.view.Header.Trigger == nil {
		return ""
	}
	if m.busy {
		return render.TriggerBusyLabel
	}
	return m.view.Header.Trigger.Label
}

// Selected returns the focused card.
func (m *Model) Selected() (render.Card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Cards) {
		return render.Card{}, false
	}
	return m.view.Cards[m.cursor], true
}

// Cursor returns the index of the focused card.
func (m *Model) Cursor() int { return m.cursor }

// Update handles messages for the list. It mutates the model in place.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.busy {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Cards)-1 {
			m.cursor++
		}
		m.scrollToCursor()
		return nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()
		return nil

	case key.Matches(msg, m.keys.Unsubscribe):
		return m.activate(render.ActionUnsubscribe)

	case key.Matches(msg, m.keys.Skip):
		return m.activate(render.ActionSkip)

	case key.Matches(msg, m.keys.Scan):
		return m.pressTrigger()

	case key.Matches(msg, m.keys.Select):
		card, ok := m.Selected()
		if !ok {
			return nil
		}
		return func() tea.Msg {
			return OpenEmailMsg{Card: card}
		}
	}
	return nil
}

// activate fires the focused card's affordance of the given kind, if the
// card has one.
func (m *Model) activate(kind render.ActionKind) tea.Cmd {
	card, ok := m.Selected()
	if !ok {
		return nil
	}
	action, ok := card.Action(kind)
	if !ok {
		return nil
	}
	return action.Activate()
}

func (m *Model) pressTrigger() tea.Cmd {
	if m.view.Header.Trigger == nil || m.busy {
		return nil
	}
	id := m.id
	return func() tea.Msg {
		return TriggerMsg{Container: id}
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.view.Cards) {
		m.cursor = len(m.view.Cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

// cardHeight measures one rendered card. Every card of a list carries the
// same rows and buttons, so the first one stands for all of them.
func (m *Model) cardHeight() int {
	var card render.Card
	if len(m.view.Cards) > 0 {
		card = m.view.Cards[0]
	}
	return lipgloss.Height(m.renderCard(card, false))
}

func (m *Model) visibleCards() int {
	n := (m.height - lipgloss.Height(m.renderHeader())) / m.cardHeight()
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) scrollToCursor() {
	visible := m.visibleCards()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollToCursor()
}

// View renders the header and the visible cards.
func (m *Model) View() string {
	header := m.renderHeader()

	if len(m.view.Cards) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderEmptyState())
	}

	end := m.offset + m.visibleCards()
	if end > len(m.view.Cards) {
		end = len(m.view.Cards)
	}

	rows := []string{header}
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderCard(m.view.Cards[i], i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderHeader() string {
	title := theme.HeaderStyle.Render(m.view.Header.Title)
	if m.view.Header.Trigger == nil {
		return title
	}

	var trigger string
	if m.busy {
		trigger = m.spinner.View() + " " +
			theme.ButtonStyle("scan", false).Render(render.TriggerBusyLabel)
	} else {
		trigger = theme.ButtonStyle("scan", true).Render(m.view.Header.Trigger.Label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", trigger)
}

func (m *Model) renderEmptyState() string {
	msg := "No emails."
	if m.view.Header.Trigger != nil {
		msg = "No candidates yet.\n\nPress S to scan for emails."
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-1).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(msg)
}

func (m *Model) renderCard(card render.Card, selected bool) string {
	inner := m.width - 4
	if inner < 20 {
		inner = 20
	}

	style := theme.CardStyle
	if selected && m.active {
		style = theme.SelectedCardStyle
	}
	// Width includes the padding, so rows get what is left inside it.
	content := inner - style.GetHorizontalPadding()

	rec := card.Record
	date := theme.DateStyle.Render(runewidth.Truncate(rec.Date, content/2, "…"))
	subjectWidth := content - lipgloss.Width(date) - 1
	if subjectWidth < 1 {
		subjectWidth = 1
	}
	subject := theme.SubjectStyle.Render(runewidth.Truncate(rec.Subject, subjectWidth, "…"))
	gap := content - lipgloss.Width(subject) - lipgloss.Width(date)
	if gap < 1 {
		gap = 1
	}
	top := subject + strings.Repeat(" ", gap) + date

	sender := theme.SenderStyle.Render(runewidth.Truncate("From: "+rec.Sender, content, "…"))

	var actions []string
	if card.Indicator != render.IndicatorNone {
		actions = append(actions, theme.IndicatorStyle(card.Indicator.String()).Render(card.Indicator.Label()))
	}
	for _, a := range card.Actions {
		actions = append(actions, theme.ButtonStyle(a.Kind.String(), a.Enabled()).Render(a.Kind.Label()))
	}

	return style.Width(inner).Render(
		lipgloss.JoinVertical(lipgloss.Left, top, sender, strings.Join(actions, " ")),
	)
}
