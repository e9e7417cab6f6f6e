package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the application title bar and list titles.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorBarStyle replaces StatusBarStyle while an error is surfaced.
var ErrorBarStyle = StatusBarStyle.
	Background(ColorRed).
	Bold(true)

// DetailPanelStyle wraps overlay and detail content.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// CardStyle is the frame around one email.
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SelectedCardStyle highlights the focused email.
var SelectedCardStyle = CardStyle.
	BorderForeground(ColorBlue)

// SubjectStyle renders the email subject line.
var SubjectStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// DateStyle renders the email date.
var DateStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// SenderStyle renders the "From:" line.
var SenderStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// TabStyle is an inactive tab control.
var TabStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Padding(0, 2)

// ActiveTabStyle is the selected tab control.
var ActiveTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue).
	Padding(0, 2).
	Underline(true)

// ButtonStyle returns the style for an action button. Disabled buttons
// are dimmed regardless of kind.
func ButtonStyle(action string, enabled bool) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if !enabled {
		return base.Foreground(ColorSubtle).Bold(false)
	}

	switch action {
	case "unsubscribe":
		return base.Foreground(ColorWhite).Background(ColorRed)
	case "skip":
		return base.Foreground(ColorWhite).Background(ColorSubtle)
	case "scan":
		return base.Foreground(ColorWhite).Background(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// IndicatorStyle returns a color-coded style for a card status indicator.
func IndicatorStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case "unsubscribed":
		return base.Foreground(ColorGreen)
	case "skipped":
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}
