package emaillist

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/unsubmgr/internal/keys"
	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/render"
)

type actionMsg struct {
	kind string
	id   string
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newList(t *testing.T, mode model.DisplayMode, records []model.EmailRecord) (*Model, *int) {
	t.Helper()
	calls := 0
	cb := render.Callbacks{
		OnUnsubscribe: func(id string) tea.Cmd {
			calls++
			return func() tea.Msg { return actionMsg{kind: "unsubscribe", id: id} }
		},
		OnSkip: func(id string) tea.Cmd {
			calls++
			return func() tea.Msg { return actionMsg{kind: "skip", id: id} }
		},
	}
	m := New(model.ContainerFor(mode), mode, keys.DefaultKeyMap(), 80, 40)
	m.SetActive(true)
	m.Replace(render.Build(records, mode, cb))
	return m, &calls
}

func records() []model.EmailRecord {
	return []model.EmailRecord{
		{ID: "a", Sender: "a@x.com", Subject: "Alpha", Date: "2024-01-01"},
		{ID: "b", Sender: "b@x.com", Subject: "Beta", Date: "2024-01-02"},
	}
}

func TestKeysActivateFocusedCard(t *testing.T) {
	m, calls := newList(t, model.ModeCandidate, records())

	cmd := m.Update(runeKey('u'))
	require.NotNil(t, cmd)
	assert.Equal(t, actionMsg{kind: "unsubscribe", id: "a"}, cmd())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	cmd = m.Update(runeKey('s'))
	require.NotNil(t, cmd)
	assert.Equal(t, actionMsg{kind: "skip", id: "b"}, cmd())

	assert.Equal(t, 2, *calls, "one callback per key press")
}

func TestUnsubscribedCardsHaveNoActions(t *testing.T) {
	m, calls := newList(t, model.ModeUnsubscribed, records())

	assert.Nil(t, m.Update(runeKey('u')))
	assert.Nil(t, m.Update(runeKey('s')))
	assert.Zero(t, *calls)
}

func TestSkippedCardsOnlyUnsubscribe(t *testing.T) {
	m, calls := newList(t, model.ModeSkipped, records())

	assert.Nil(t, m.Update(runeKey('s')))
	cmd := m.Update(runeKey('u'))
	require.NotNil(t, cmd)
	assert.Equal(t, actionMsg{kind: "unsubscribe", id: "a"}, cmd())
	assert.Equal(t, 1, *calls)
}

func TestCursorBounds(t *testing.T) {
	m, _ := newList(t, model.ModeCandidate, records())

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor())

	// A shorter replacement clamps the cursor.
	m.Replace(render.Build(records()[:1], model.ModeCandidate, render.Callbacks{}))
	assert.Equal(t, 0, m.Cursor())

	m.Replace(render.Build(nil, model.ModeCandidate, render.Callbacks{}))
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Nil(t, m.Update(runeKey('u')))
}

func TestTrigger(t *testing.T) {
	m, _ := newList(t, model.ModeCandidate, nil)
	assert.Equal(t, render.TriggerLabel, m.TriggerLabel())

	cmd := m.Update(runeKey('S'))
	require.NotNil(t, cmd)
	assert.Equal(t, TriggerMsg{Container: model.ContainerCandidates}, cmd())

	assert.NotNil(t, m.SetBusy(true))
	assert.Equal(t, render.TriggerBusyLabel, m.TriggerLabel())
	assert.Nil(t, m.Update(runeKey('S')), "trigger is disabled while busy")

	// Busy state survives a full replacement.
	m.Replace(render.Build(records(), model.ModeCandidate, render.Callbacks{}))
	assert.True(t, m.Busy())
	assert.Contains(t, m.View(), render.TriggerBusyLabel)

	assert.Nil(t, m.SetBusy(false))
	assert.Equal(t, render.TriggerLabel, m.TriggerLabel())
}

func TestNoTriggerOutsideCandidates(t *testing.T) {
	m, _ := newList(t, model.ModeSkipped, records())
	assert.Empty(t, m.TriggerLabel())
	assert.Nil(t, m.Update(runeKey('S')))
}

func TestSelectOpensEmail(t *testing.T) {
	m, _ := newList(t, model.ModeCandidate, records())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	open, ok := cmd().(OpenEmailMsg)
	require.True(t, ok)
	assert.Equal(t, records()[1], open.Card.Record)
	assert.Len(t, open.Card.Actions, 2)
}

func TestView(t *testing.T) {
	m, _ := newList(t, model.ModeCandidate, records())
	out := m.View()

	assert.Contains(t, out, "Email Candidates (2)")
	assert.Contains(t, out, "Scan for Emails")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "From: a@x.com")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "Unsubscribe")
	assert.Contains(t, out, "Skip")

	m, _ = newList(t, model.ModeUnsubscribed, nil)
	out = m.View()
	assert.Contains(t, out, "Unsubscribed Emails (0)")
	assert.Contains(t, out, "No emails.")
	assert.NotContains(t, out, "Scan for Emails")
}

func manyRecords(n int) []model.EmailRecord {
	out := make([]model.EmailRecord, n)
	for i := range out {
		out[i] = model.EmailRecord{
			ID:      strconv.Itoa(i),
			Sender:  "news@example.com",
			Subject: "Subject " + strconv.Itoa(i),
			Date:    "2024-01-01",
		}
	}
	return out
}

func TestCardKeepsDateOnTopRow(t *testing.T) {
	m, _ := newList(t, model.ModeCandidate, records())
	card := m.renderCard(m.view.Cards[0], false)

	assert.Equal(t, 5, lipgloss.Height(card))
	lines := strings.Split(card, "\n")
	assert.Contains(t, lines[1], "Alpha")
	assert.Contains(t, lines[1], "2024-01-01")
}

func TestViewFitsHeight(t *testing.T) {
	for _, width := range []int{80, 40} {
		m, _ := newList(t, model.ModeCandidate, manyRecords(10))
		m.SetSize(width, 22)
		for range 3 {
			m.Update(tea.KeyMsg{Type: tea.KeyDown})
		}

		out := m.View()
		assert.LessOrEqual(t, lipgloss.Height(out), 22, "width %d", width)
		assert.Contains(t, out, "Subject 3", "focused card stays visible at width %d", width)

		for range 6 {
			m.Update(tea.KeyMsg{Type: tea.KeyDown})
		}
		out = m.View()
		assert.LessOrEqual(t, lipgloss.Height(out), 22, "width %d", width)
		assert.Contains(t, out, "Subject 9")
	}
}

func TestLongFieldsAreTruncated(t *testing.T) {
	long := strings.Repeat("x", 200)
	m, _ := newList(t, model.ModeCandidate, []model.EmailRecord{
		{ID: "1", Sender: long + "@x.com", Subject: long, Date: "2024-01-01"},
	})

	out := m.View()
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "2024-01-01")
	assert.LessOrEqual(t, lipgloss.Width(out), 80)
}
