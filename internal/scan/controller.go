// Package scan runs the "scan for emails" action: fetch candidates and
// hand them to the renderer, with the trigger disabled while in flight.
package scan

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/unsubmgr/internal/api"
	"github.com/nhle/unsubmgr/internal/logger"
	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/render"
)

// State is the controller's position in the idle/scanning cycle.
type State int

const (
	Idle State = iota
	Scanning
)

func (s State) String() string {
	if s == Scanning {
		return "scanning"
	}
	return "idle"
}

// CandidateSource fetches candidate emails.
type CandidateSource interface {
	Candidates(ctx context.Context) api.Result[[]model.EmailRecord]
}

// TriggerControl is the control that starts a scan.
type TriggerControl interface {
	SetBusy(busy bool) tea.Cmd
}

// ListRenderer draws records into a container.
type ListRenderer interface {
	RenderList(containerID string, records []model.EmailRecord, mode model.DisplayMode, cb render.Callbacks) bool
}

// CompletedMsg reports the outcome of a scan.
type CompletedMsg struct {
	Records []model.EmailRecord
	Err     error
}

// Controller owns the scan state machine.
type Controller struct {
	source    CandidateSource
	renderer  ListRenderer
	trigger   TriggerControl
	callbacks render.Callbacks
	container string
	state     State
	log       *zap.Logger
}

// New creates a controller that renders results into the candidates
// container with the given action callbacks.
func New(
	source CandidateSource,
	renderer ListRenderer,
	trigger TriggerControl,
	callbacks render.Callbacks,
	log *zap.Logger,
) *Controller {
	return &Controller{
		source:    source,
		renderer:  renderer,
		trigger:   trigger,
		callbacks: callbacks,
		container: model.ContainerCandidates,
		state:     Idle,
		log:       logger.OrNop(log).Named("scan"),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Trigger starts a scan. While one is already running it does nothing.
// The returned command always yields a CompletedMsg, even if the fetch
// panics.
func (c *Controller) Trigger(ctx context.Context) tea.Cmd {
	if c.state == Scanning {
		return nil
	}
	c.state = Scanning
	c.log.Info("scan started")

	busy := c.trigger.SetBusy(true)
	src := c.source
	fetch := func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = CompletedMsg{
					Records: []model.EmailRecord{},
					Err:     fmt.Errorf("scan aborted: %v", r),
				}
			}
		}()
		res := src.Candidates(ctx)
		return CompletedMsg{Records: res.Value, Err: res.Err}
	}
	return tea.Batch(busy, fetch)
}

// Complete finishes a scan. The controller returns to Idle and the trigger
// is re-enabled whatever the outcome. On success the records are rendered
// in candidate mode; on failure the display is left alone and the error
// is returned for optional display.
func (c *Controller) Complete(msg CompletedMsg) error {
	defer func() {
		c.state = Idle
		c.trigger.SetBusy(false)
	}()

	if msg.Err != nil {
		c.log.Error("scan failed", zap.Error(msg.Err))
		return fmt.Errorf("scan failed: %w", msg.Err)
	}

	c.renderer.RenderList(c.container, msg.Records, model.ModeCandidate, c.callbacks)
	c.log.Info("scan completed", zap.Int("candidates", len(msg.Records)))
	return nil
}
