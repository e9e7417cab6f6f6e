package model

import "fmt"

// Container identifiers for the panels that email lists are rendered into.
const (
	ContainerCandidates   = "candidates"
	ContainerUnsubscribed = "unsubscribed"
	ContainerSkipped      = "skipped"
)

// SkipStatusError is the status reported when a skip request failed.
const SkipStatusError = "error"

// EmailRecord is a single email as returned by the backend.
type EmailRecord struct {
	// ID is the opaque identifier used to key every action on this email.
	ID string `json:"id"`

	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`

	// Date is already formatted for display by the backend and is never parsed.
	Date string `json:"date"`
}

// UnsubscribeResult is the backend's answer to an unsubscribe request.
type UnsubscribeResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	MethodUsed string `json:"method_used,omitempty"`
}

// SkipResult is the backend's answer to a skip request.
type SkipResult struct {
	Status string `json:"status"`
}

// Failed reports whether the skip request did not go through.
func (r SkipResult) Failed() bool {
	return r.Status == SkipStatusError
}

// Stats is the backend's aggregate processing counters.
type Stats struct {
	TotalAnalyzed int `json:"total_analyzed"`
	Unsubscribed  int `json:"unsubscribed"`
	Skipped       int `json:"skipped"`
}

// DisplayMode selects which action affordances are attached to rendered
// emails.
type DisplayMode int

const (
	ModeCandidate DisplayMode = iota
	ModeUnsubscribed
	ModeSkipped
)

// String returns the lower-case name of the mode.
func (m DisplayMode) String() string {
	switch m {
	case ModeCandidate:
		return "candidate"
	case ModeUnsubscribed:
		return "unsubscribed"
	case ModeSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("DisplayMode(%d)", int(m))
	}
}

// ParseDisplayMode converts a mode name back into a DisplayMode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch s {
	case "candidate":
		return ModeCandidate, nil
	case "unsubscribed":
		return ModeUnsubscribed, nil
	case "skipped":
		return ModeSkipped, nil
	default:
		return 0, fmt.Errorf("unknown display mode %q", s)
	}
}

// ContainerFor returns the container id that lists emails of the given mode.
func ContainerFor(m DisplayMode) string {
	switch m {
	case ModeUnsubscribed:
		return ContainerUnsubscribed
	case ModeSkipped:
		return ContainerSkipped
	default:
		return ContainerCandidates
	}
}
