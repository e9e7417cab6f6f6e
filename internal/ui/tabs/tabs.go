// Package tabs switches which content panel is visible. Controls and
// panels are associated by panel id, never by position.
package tabs

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/unsubmgr/internal/theme"
)

// Panel is a content area that can be shown or hidden.
type Panel interface {
	SetActive(active bool)
	Active() bool
}

// Panels resolves panel ids and enumerates every panel.
type Panels interface {
	Panel(id string) (Panel, bool)
	All() []Panel
}

// Control is a tab button targeting the panel with id Target.
type Control struct {
	Label  string
	Target string
	active bool
}

// Active reports whether this control is the selected tab.
func (c Control) Active() bool { return c.active }

// Tabs keeps exactly one control and its panel active.
type Tabs struct {
	controls []Control
	panels   Panels
}

// New creates the tab bar and activates the first control whose target
// resolves to a panel.
func New(panels Panels, controls ...Control) *Tabs {
	t := &Tabs{
		controls: append([]Control(nil), controls...),
		panels:   panels,
	}
	for i := range t.controls {
		if t.Click(i) {
			break
		}
	}
	return t
}

// Click selects control i. When the control does not exist or its target
// has no panel, nothing changes and false is returned.
func (t *Tabs) Click(i int) bool {
	if i < 0 || i >= len(t.controls) {
		return false
	}
	target, ok := t.panels.Panel(t.controls[i].Target)
	if !ok {
		return false
	}

	for j := range t.controls {
		t.controls[j].active = false
	}
	for _, p := range t.panels.All() {
		p.SetActive(false)
	}

	t.controls[i].active = true
	target.SetActive(true)
	return true
}

// ClickTarget selects the first control targeting panel id.
func (t *Tabs) ClickTarget(id string) bool {
	for i, c := range t.controls {
		if c.Target == id {
			return t.Click(i)
		}
	}
	return false
}

// Next selects the control after the active one, wrapping around and
// skipping controls whose panel is missing.
func (t *Tabs) Next() bool {
	return t.step(1)
}

// Prev selects the control before the active one.
func (t *Tabs) Prev() bool {
	return t.step(-1)
}

func (t *Tabs) step(dir int) bool {
	n := len(t.controls)
	if n == 0 {
		return false
	}
	start := t.activeIndex()
	if start < 0 {
		start = 0
	}
	for k := 1; k <= n; k++ {
		i := ((start+dir*k)%n + n) % n
		if t.Click(i) {
			return true
		}
	}
	return false
}

func (t *Tabs) activeIndex() int {
	for i, c := range t.controls {
		if c.active {
			return i
		}
	}
	return -1
}

// ActiveTarget returns the panel id of the selected tab, or "" if none.
func (t *Tabs) ActiveTarget() string {
	if i := t.activeIndex(); i >= 0 {
		return t.controls[i].Target
	}
	return ""
}

// snapshot returns a copy of the tab controls.
func (t *Tabs) snapshot() []Control {
	return append([]Control(nil), t.controls...)
}

// View renders the tab bar.
func (t *Tabs) View() string {
	parts := make([]string, 0, len(t.controls))
	for i, c := range t.controls {
		label := strings.TrimSpace(c.Label)
		num := strconv.Itoa(i + 1)
		if c.active {
			parts = append(parts, theme.ActiveTabStyle.Render(num+" "+label))
		} else {
			parts = append(parts, theme.TabStyle.Render(num+" "+label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
