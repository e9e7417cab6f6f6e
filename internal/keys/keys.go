package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Open the focused email's body
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Tabs
	NextTab         key.Binding
	PrevTab         key.Binding
	TabCandidates   key.Binding
	TabUnsubscribed key.Binding
	TabSkipped      key.Binding

	// Actions on the focused email
	Unsubscribe key.Binding
	Skip        key.Binding

	// Scan trigger in the candidate header
	Scan key.Binding

	// Reload the active tab
	Refresh key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read email"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		TabCandidates: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "candidates"),
		),
		TabUnsubscribed: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "unsubscribed"),
		),
		TabSkipped: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "skipped"),
		),
		Unsubscribe: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unsubscribe"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Scan: key.NewBinding(
			key.WithKeys("S", "f5"),
			key.WithHelp("S", "scan for emails"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Unsubscribe, k.Skip,
		k.Scan, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.NextTab, k.PrevTab, k.TabCandidates, k.TabUnsubscribed, k.TabSkipped},
		{k.Unsubscribe, k.Skip, k.Scan, k.Refresh},
		{k.Command, k.Help},
	}
}
