package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/ui/command"
)

// handleGlobalKey processes keys that work regardless of the list's focus.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m.quit(), true
	}

	switch m.currentView {
	case ViewCommand:
		return nil, false
	case ViewConfirm:
		if key.Matches(msg, m.keys.Back) {
			m.confirmView, _ = m.confirmView.Abort()
			m.currentView = m.previousView
			return nil, true
		}
		return nil, false
	case ViewHelp:
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return nil, true
		}
		return nil, false
	case ViewDetail:
		if key.Matches(msg, m.keys.Help) {
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return nil, true
		}
		return nil, false
	}

	// List view: any key dismisses the last status message.
	m.status = ""
	m.statusErr = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(), true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m.commandView.Focus(), true

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(m.tabs.Next), true

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(m.tabs.Prev), true

	case key.Matches(msg, m.keys.TabCandidates):
		return m.selectTab(model.ContainerCandidates), true

	case key.Matches(msg, m.keys.TabUnsubscribed):
		return m.selectTab(model.ContainerUnsubscribed), true

	case key.Matches(msg, m.keys.TabSkipped):
		return m.selectTab(model.ContainerSkipped), true

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh(), true
	}
	return nil, false
}

func (m *Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

// selectTab activates the tab for container id.
func (m *Model) selectTab(id string) tea.Cmd {
	return m.switchTab(func() bool { return m.tabs.ClickTarget(id) })
}

// switchTab runs a tab transition and loads the unsubscribed list when
// its tab becomes visible.
func (m *Model) switchTab(move func() bool) tea.Cmd {
	before := m.tabs.ActiveTarget()
	if !move() {
		return nil
	}
	after := m.tabs.ActiveTarget()
	if after == before || after != model.ContainerUnsubscribed {
		return nil
	}
	return m.loadUnsubscribed()
}

// refresh reloads whatever the active tab shows. Skipped emails only live
// in memory, so refreshing that tab just updates the stats.
func (m *Model) refresh() tea.Cmd {
	switch m.tabs.ActiveTarget() {
	case model.ContainerCandidates:
		return tea.Batch(m.startScan(), m.loadStats())
	case model.ContainerUnsubscribed:
		return tea.Batch(m.loadUnsubscribed(), m.loadStats())
	default:
		return m.loadStats()
	}
}

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(msg command.CommandMsg) tea.Cmd {
	if !msg.Known {
		m.setError(fmt.Sprintf("unknown command: %s", msg.Name))
		return nil
	}

	switch msg.Name {
	case command.Scan:
		m.selectTab(model.ContainerCandidates)
		return m.startScan()
	case command.Refresh:
		return m.refresh()
	case command.Candidates, command.Unsubscribed, command.Skipped:
		return m.selectTab(msg.Name)
	case command.Help:
		m.previousView = ViewList
		m.currentView = ViewHelp
		return nil
	case command.Quit:
		return m.quit()
	default:
		return nil
	}
}
