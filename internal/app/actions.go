package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/unsubmgr/internal/api"
	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/scan"
)

// unsubscribeRequestedMsg is emitted by an unsubscribe affordance.
type unsubscribeRequestedMsg struct {
	id string
}

// skipRequestedMsg is emitted by a skip affordance.
type skipRequestedMsg struct {
	id string
}

type unsubscribeDoneMsg struct {
	id     string
	result api.Result[model.UnsubscribeResult]
}

type skipDoneMsg struct {
	id     string
	result api.Result[model.SkipResult]
}

type unsubscribedLoadedMsg struct {
	result api.Result[[]model.EmailRecord]
}

type statsLoadedMsg struct {
	result api.Result[model.Stats]
}

// requestUnsubscribe and requestSkip are the render callbacks. They only
// emit a message so the request is handled by whichever model copy is
// current when it arrives.
func requestUnsubscribe(id string) tea.Cmd {
	return func() tea.Msg { return unsubscribeRequestedMsg{id: id} }
}

func requestSkip(id string) tea.Cmd {
	return func() tea.Msg { return skipRequestedMsg{id: id} }
}

// LoadCandidates fetches the candidate list. An empty slice is returned
// when the backend cannot be reached or answers garbage.
func (m *Model) LoadCandidates(ctx context.Context) []model.EmailRecord {
	return m.client.FetchCandidates(ctx)
}

// LoadUnsubscribed fetches the emails already unsubscribed from.
func (m *Model) LoadUnsubscribed(ctx context.Context) []model.EmailRecord {
	return m.client.FetchUnsubscribed(ctx)
}

// HandleUnsubscribe asks the backend to unsubscribe from email id.
func (m *Model) HandleUnsubscribe(ctx context.Context, id string) model.UnsubscribeResult {
	return m.client.UnsubscribeEmail(ctx, id)
}

// HandleSkip marks email id as skipped.
func (m *Model) HandleSkip(ctx context.Context, id string) model.SkipResult {
	return m.client.SkipEmail(ctx, id)
}

func (m *Model) startScan() tea.Cmd {
	return m.scanner.Trigger(m.ctx)
}

func (m *Model) finishScan(msg scan.CompletedMsg) tea.Cmd {
	if msg.Err == nil {
		m.candidates = msg.Records
	}
	if err := m.scanner.Complete(msg); err != nil {
		m.setError(err.Error())
		return nil
	}
	m.setStatus(fmt.Sprintf("Scan complete: %d candidates", len(msg.Records)))
	return m.loadStats()
}

// requestUnsubscribe routes an unsubscribe affordance through the
// confirmation prompt when one is configured.
func (m *Model) requestUnsubscribe(id string) tea.Cmd {
	if m.inFlight[id] {
		return nil
	}
	if !m.cfg.UI.ConfirmUnsubscribe {
		return m.startUnsubscribe(id)
	}

	rec, ok := m.findRecord(id)
	if !ok {
		rec = model.EmailRecord{ID: id}
	}
	m.previousView = m.currentView
	m.currentView = ViewConfirm
	return m.confirmView.Start(rec)
}

func (m *Model) startUnsubscribe(id string) tea.Cmd {
	if m.inFlight[id] {
		return nil
	}
	m.inFlight[id] = true
	m.setStatus("Unsubscribing...")

	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		return unsubscribeDoneMsg{id: id, result: client.Unsubscribe(ctx, id)}
	}
}

func (m *Model) finishUnsubscribe(msg unsubscribeDoneMsg) tea.Cmd {
	delete(m.inFlight, msg.id)
	res := msg.result.Value

	if !res.Success {
		m.log.Warn("unsubscribe failed",
			zap.String("email_id", msg.id),
			zap.String("message", res.Message),
			zap.Error(msg.result.Err),
		)
		m.setError("Unsubscribe failed: " + res.Message)
		return nil
	}

	m.log.Info("unsubscribed",
		zap.String("email_id", msg.id),
		zap.String("method", res.MethodUsed),
	)
	m.candidates = without(m.candidates, msg.id)
	m.skipped = without(m.skipped, msg.id)
	m.renderCandidates()
	m.renderSkipped()
	m.leaveDetailFor(msg.id)

	status := "Unsubscribed"
	if res.Message != "" {
		status += ": " + res.Message
	}
	m.setStatus(status)
	return tea.Batch(m.loadUnsubscribed(), m.loadStats())
}

func (m *Model) startSkip(id string) tea.Cmd {
	if m.inFlight[id] {
		return nil
	}
	m.inFlight[id] = true

	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		return skipDoneMsg{id: id, result: client.Skip(ctx, id)}
	}
}

func (m *Model) finishSkip(msg skipDoneMsg) tea.Cmd {
	delete(m.inFlight, msg.id)

	if msg.result.Value.Failed() {
		m.log.Warn("skip failed", zap.String("email_id", msg.id), zap.Error(msg.result.Err))
		m.setError("Skip failed: " + failureReason(msg.result.Err))
		return nil
	}

	m.log.Info("skipped", zap.String("email_id", msg.id))
	if rec, ok := find(m.candidates, msg.id); ok {
		if _, dup := find(m.skipped, msg.id); !dup {
			m.skipped = append(m.skipped, rec)
		}
	}
	m.candidates = without(m.candidates, msg.id)
	m.renderCandidates()
	m.renderSkipped()
	m.leaveDetailFor(msg.id)
	m.setStatus("Skipped")
	return m.loadStats()
}

func (m *Model) loadUnsubscribed() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		return unsubscribedLoadedMsg{result: client.Unsubscribed(ctx)}
	}
}

// applyUnsubscribed renders a freshly loaded unsubscribed list. A failed
// load leaves the previous content in place.
func (m *Model) applyUnsubscribed(res api.Result[[]model.EmailRecord]) {
	if !res.OK() {
		m.setError("Could not load unsubscribed emails: " + failureReason(res.Err))
		return
	}
	m.unsubscribed = res.Value
	m.renderList(model.ModeUnsubscribed, m.unsubscribed)
}

func (m *Model) loadStats() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		return statsLoadedMsg{result: client.Stats(ctx)}
	}
}

// applyStats keeps the last known figures when the backend cannot answer.
func (m *Model) applyStats(res api.Result[model.Stats]) {
	if !res.OK() {
		return
	}
	m.stats = res.Value
	m.statsKnown = true
}

func (m *Model) renderCandidates() {
	m.renderList(model.ModeCandidate, m.candidates)
}

func (m *Model) renderSkipped() {
	m.renderList(model.ModeSkipped, m.skipped)
}

// renderList draws records into the panel that owns mode.
func (m *Model) renderList(mode model.DisplayMode, records []model.EmailRecord) {
	m.renderer.RenderList(model.ContainerFor(mode), records, mode, m.cb)
}

// failureReason turns a request error into a short status bar message.
func failureReason(err error) string {
	switch {
	case err == nil:
		return "backend refused"
	case api.IsParseFailure(err):
		return "invalid response from backend"
	case api.IsNetworkFailure(err):
		return "backend unavailable"
	default:
		return err.Error()
	}
}

// leaveDetailFor closes the body viewer if it shows email id.
func (m *Model) leaveDetailFor(id string) {
	if m.currentView != ViewDetail {
		return
	}
	if card, ok := m.detail.Card(); ok && card.Record.ID == id {
		m.detail.Clear()
		m.currentView = ViewList
	}
}

// findRecord looks id up in the lists the user can act on.
func (m *Model) findRecord(id string) (model.EmailRecord, bool) {
	if rec, ok := find(m.candidates, id); ok {
		return rec, true
	}
	return find(m.skipped, id)
}

func find(records []model.EmailRecord, id string) (model.EmailRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return model.EmailRecord{}, false
}

// without returns records minus every entry with the given id.
func without(records []model.EmailRecord, id string) []model.EmailRecord {
	out := make([]model.EmailRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
