package render

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/unsubmgr/internal/model"
)

// Labels shown on the scan trigger.
const (
	TriggerLabel     = "Scan for Emails"
	TriggerBusyLabel = "Scanning..."
)

// ActionKind identifies what an action affordance does.
type ActionKind int

const (
	ActionUnsubscribe ActionKind = iota
	ActionSkip
)

func (k ActionKind) String() string {
	switch k {
	case ActionUnsubscribe:
		return "unsubscribe"
	case ActionSkip:
		return "skip"
	default:
		return ""
	}
}

// Label returns the button text for the action.
func (k ActionKind) Label() string {
	switch k {
	case ActionUnsubscribe:
		return "Unsubscribe"
	case ActionSkip:
		return "Skip"
	default:
		return ""
	}
}

// Indicator is a static status marker shown on a card.
type Indicator int

const (
	IndicatorNone Indicator = iota
	IndicatorUnsubscribed
	IndicatorSkipped
)

func (i Indicator) String() string {
	switch i {
	case IndicatorUnsubscribed:
		return "unsubscribed"
	case IndicatorSkipped:
		return "skipped"
	default:
		return ""
	}
}

// Label returns the indicator text.
func (i Indicator) Label() string {
	switch i {
	case IndicatorUnsubscribed:
		return "✓ Unsubscribed"
	case IndicatorSkipped:
		return "⊝ Skipped"
	default:
		return ""
	}
}

// Callbacks receive the id of the email whose affordance was activated.
// The returned command is handed back to the Bubble Tea runtime.
type Callbacks struct {
	OnUnsubscribe func(id string) tea.Cmd
	OnSkip        func(id string) tea.Cmd
}

// Action is a clickable affordance bound to one email by id.
type Action struct {
	Kind    ActionKind
	EmailID string

	handler func(id string) tea.Cmd
}

// Enabled reports whether activating the action does anything. Actions
// without an id or without a callback are inert.
func (a Action) Enabled() bool {
	return a.EmailID != "" && a.handler != nil
}

// Activate invokes the bound callback once with the action's own email id.
func (a Action) Activate() tea.Cmd {
	if !a.Enabled() {
		return nil
	}
	return a.handler(a.EmailID)
}

// Trigger is the scan control shown in the candidate header.
type Trigger struct {
	Label string
}

// Header is the title row above a list.
type Header struct {
	Title   string
	Count   int
	Trigger *Trigger
}

// Card is the rendered form of one email.
type Card struct {
	Record    model.EmailRecord
	Indicator Indicator
	Actions   []Action
}

// Action returns the card's affordance of the given kind, if it has one.
func (c Card) Action(kind ActionKind) (Action, bool) {
	for _, a := range c.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return Action{}, false
}

// View is everything a mount point needs to draw one list.
type View struct {
	Mode   model.DisplayMode
	Header Header
	Cards  []Card
}

// ActionCount returns the number of affordances across all cards.
func (v View) ActionCount() int {
	n := 0
	for _, c := range v.Cards {
		n += len(c.Actions)
	}
	return n
}

// Title returns the header title for a list of count emails.
func Title(mode model.DisplayMode, count int) string {
	switch mode {
	case model.ModeCandidate:
		return fmt.Sprintf("Email Candidates (%d)", count)
	case model.ModeUnsubscribed:
		return fmt.Sprintf("Unsubscribed Emails (%d)", count)
	case model.ModeSkipped:
		return fmt.Sprintf("Skipped Emails (%d)", count)
	default:
		return fmt.Sprintf("Emails (%d)", count)
	}
}

// Build turns records into a View. Cards appear in input order, one per
// record, with no deduplication.
func Build(records []model.EmailRecord, mode model.DisplayMode, cb Callbacks) View {
	v := View{
		Mode: mode,
		Header: Header{
			Title: Title(mode, len(records)),
			Count: len(records),
		},
		Cards: make([]Card, 0, len(records)),
	}
	if mode == model.ModeCandidate {
		v.Header.Trigger = &Trigger{Label: TriggerLabel}
	}

	for _, rec := range records {
		v.Cards = append(v.Cards, buildCard(rec, mode, cb))
	}
	return v
}

func buildCard(rec model.EmailRecord, mode model.DisplayMode, cb Callbacks) Card {
	card := Card{Record: rec}

	unsubscribe := Action{Kind: ActionUnsubscribe, EmailID: rec.ID, handler: cb.OnUnsubscribe}
	skip := Action{Kind: ActionSkip, EmailID: rec.ID, handler: cb.OnSkip}

	switch mode {
	case model.ModeCandidate:
		card.Actions = []Action{unsubscribe, skip}
	case model.ModeUnsubscribed:
		card.Indicator = IndicatorUnsubscribed
	case model.ModeSkipped:
		// Skipped emails can still be unsubscribed from.
		card.Indicator = IndicatorSkipped
		card.Actions = []Action{unsubscribe}
	}
	return card
}
