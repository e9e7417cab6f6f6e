package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"scan", Scan, true},
		{"  Reload ", Refresh, true},
		{"q", Quit, true},
		{"skipped", Skipped, true},
		{"delete", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Resolve(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	m := typeText(New(60, 20), "reload")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: Refresh, Known: true}, cmd())
	assert.NotContains(t, m.View(), "reload")
}

func TestEnterUnknownCommand(t *testing.T) {
	m := typeText(New(60, 20), "frobnicate")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: "frobnicate", Known: false}, cmd())
}

func TestEnterBlankIsIgnored(t *testing.T) {
	_, cmd := New(60, 20).Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestEscCancels(t *testing.T) {
	m := typeText(New(60, 20), "sc")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}
