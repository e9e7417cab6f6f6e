package detail

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/unsubmgr/internal/keys"
	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/render"
)

type requested struct {
	kind string
	id   string
}

func card(mode model.DisplayMode) render.Card {
	cb := render.Callbacks{
		OnUnsubscribe: func(id string) tea.Cmd {
			return func() tea.Msg { return requested{"unsubscribe", id} }
		},
		OnSkip: func(id string) tea.Cmd {
			return func() tea.Msg { return requested{"skip", id} }
		},
	}
	rec := model.EmailRecord{ID: "42", Sender: "deals@shop.com", Subject: "Weekly deals", Body: "Save big this week", Date: "Mon, 1 Jan"}
	return render.Build([]model.EmailRecord{rec}, mode, cb).Cards[0]
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestEmptyView(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 60, 20)
	assert.Contains(t, m.View(), "No email selected")
	_, ok := m.Card()
	assert.False(t, ok)
}

func TestShowsBody(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetCard(card(model.ModeCandidate))

	out := m.View()
	assert.Contains(t, out, "Weekly deals")
	assert.Contains(t, out, "deals@shop.com")
	assert.Contains(t, out, "Save big this week")
	assert.Contains(t, out, "Unsubscribe")
}

func TestActionsFromViewer(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetCard(card(model.ModeCandidate))

	_, cmd := m.Update(runeKey('s'))
	require.NotNil(t, cmd)
	assert.Equal(t, requested{"skip", "42"}, cmd())

	_, cmd = m.Update(runeKey('u'))
	require.NotNil(t, cmd)
	assert.Equal(t, requested{"unsubscribe", "42"}, cmd())
}

func TestSkippedCardHasNoSkip(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetCard(card(model.ModeSkipped))

	_, cmd := m.Update(runeKey('s'))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Skipped")
}

func TestBack(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetCard(card(model.ModeUnsubscribed))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())

	m.Clear()
	_, ok := m.Card()
	assert.False(t, ok)
}
