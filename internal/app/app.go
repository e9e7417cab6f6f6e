package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/nhle/unsubmgr/internal/api"
	"github.com/nhle/unsubmgr/internal/keys"
	"github.com/nhle/unsubmgr/internal/logger"
	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/render"
	"github.com/nhle/unsubmgr/internal/scan"
	"github.com/nhle/unsubmgr/internal/ui"
	"github.com/nhle/unsubmgr/internal/ui/command"
	"github.com/nhle/unsubmgr/internal/ui/confirm"
	"github.com/nhle/unsubmgr/internal/ui/detail"
	"github.com/nhle/unsubmgr/internal/ui/emaillist"
	helpview "github.com/nhle/unsubmgr/internal/ui/help"
	"github.com/nhle/unsubmgr/internal/ui/tabs"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewConfirm
)

// Model is the root Bubble Tea model. It owns one instance of each
// component and is the handle handed to anything that drives the client.
type Model struct {
	cfg      *model.AppConfig
	client   *api.Client
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	keys     *keys.KeyMap
	layout   ui.Layout
	page     *ui.Page
	renderer *render.Renderer
	tabs     *tabs.Tabs
	scanner  *scan.Controller
	cb       render.Callbacks

	currentView  ViewState
	previousView ViewState
	detail       detail.Model
	helpView     helpview.Model
	commandView  command.Model
	confirmView  confirm.Model

	// Last successfully loaded content of each list.
	candidates   []model.EmailRecord
	unsubscribed []model.EmailRecord
	skipped      []model.EmailRecord

	stats      model.Stats
	statsKnown bool
	inFlight   map[string]bool

	status    string
	statusErr bool
	ready     bool
}

// New wires the components together. The scan uses cfg.API.ScanURL() as
// its origin, which defaults to the client's own base URL.
func New(cfg *model.AppConfig, client *api.Client, log *zap.Logger) *Model {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	log = logger.OrNop(log)
	ctx, cancel := context.WithCancel(context.Background())
	k := keys.DefaultKeyMap()

	const w, h = 80, 24
	newList := func(mode model.DisplayMode) *emaillist.Model {
		return emaillist.New(model.ContainerFor(mode), mode, k, w, h)
	}
	candidates := newList(model.ModeCandidate)
	page := ui.NewPage(
		candidates,
		newList(model.ModeUnsubscribed),
		newList(model.ModeSkipped),
	)

	m := &Model{
		cfg:         cfg,
		client:      client,
		log:         log.Named("app"),
		ctx:         ctx,
		cancel:      cancel,
		keys:        k,
		layout:      ui.NewLayout(w, h),
		page:        page,
		renderer:    render.New(page, log),
		detail:      detail.New(k, w, h),
		helpView:    helpview.New(k, w, h),
		commandView: command.New(w, h),
		confirmView: confirm.New(w, h),
		inFlight:    make(map[string]bool),
	}
	m.cb = render.Callbacks{
		OnUnsubscribe: requestUnsubscribe,
		OnSkip:        requestSkip,
	}
	m.tabs = tabs.New(page,
		tabs.Control{Label: "Candidates", Target: model.ContainerCandidates},
		tabs.Control{Label: "Unsubscribed", Target: model.ContainerUnsubscribed},
		tabs.Control{Label: "Skipped", Target: model.ContainerSkipped},
	)

	scanClient := client
	if cfg.API.ScanBaseURL != "" && cfg.API.ScanURL() != client.BaseURL() {
		scanClient = client.WithBaseURL(cfg.API.ScanURL())
	}
	m.scanner = scan.New(scanClient, m.renderer, candidates, m.cb, log)

	// Draw the empty lists so every panel has its header.
	for _, mode := range []model.DisplayMode{model.ModeCandidate, model.ModeUnsubscribed, model.ModeSkipped} {
		m.renderList(mode, nil)
	}

	return m
}

// Close cancels every request started by the model.
func (m *Model) Close() {
	m.cancel()
}

// Tabs exposes the tab controller.
func (m *Model) Tabs() *tabs.Tabs { return m.tabs }

// Page exposes the mount points by container id.
func (m *Model) Page() *ui.Page { return m.page }

// Scanner exposes the scan controller.
func (m *Model) Scanner() *scan.Controller { return m.scanner }

// CurrentView returns the view that receives key presses.
func (m *Model) CurrentView() ViewState { return m.currentView }

// Status returns the status bar message and whether it is an error.
func (m *Model) Status() (string, bool) { return m.status, m.statusErr }

// Init loads the stats shown in the header.
func (m *Model) Init() tea.Cmd {
	return m.loadStats()
}

// Update handles messages and dispatches to the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.page.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.confirmView.SetSize(w, h)
		if m.currentView == ViewConfirm {
			return m.updateActiveView(msg)
		}
		return m, nil

	case spinner.TickMsg:
		// The scan spinner keeps running whichever view is showing.
		if list, ok := m.page.List(model.ContainerCandidates); ok {
			return m, list.Update(msg)
		}
		return m, nil

	case emaillist.TriggerMsg:
		if msg.Container != model.ContainerCandidates {
			return m, nil
		}
		return m, m.startScan()

	case scan.CompletedMsg:
		return m, m.finishScan(msg)

	case unsubscribeRequestedMsg:
		return m, m.requestUnsubscribe(msg.id)

	case skipRequestedMsg:
		return m, m.startSkip(msg.id)

	case unsubscribeDoneMsg:
		return m, m.finishUnsubscribe(msg)

	case skipDoneMsg:
		return m, m.finishSkip(msg)

	case unsubscribedLoadedMsg:
		m.applyUnsubscribed(msg.result)
		return m, nil

	case statsLoadedMsg:
		m.applyStats(msg.result)
		return m, nil

	case emaillist.OpenEmailMsg:
		m.detail.SetCard(msg.Card)
		m.previousView = m.currentView
		m.currentView = ViewDetail
		return m, nil

	case detail.BackMsg:
		m.detail.Clear()
		m.currentView = ViewList
		return m, nil

	case confirm.ConfirmedMsg:
		m.currentView = m.previousView
		return m, m.startUnsubscribe(msg.EmailID)

	case confirm.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m *Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		if list, ok := m.page.ActiveList(); ok {
			cmd = list.Update(msg)
		}
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Unsubscribe Manager", m.summary())
	statusBar := m.layout.RenderStatusBar(m.statusText(), m.statusErr && m.status != "")

	return m.layout.RenderWithFrame(header, m.tabs.View(), m.renderContent(), statusBar)
}

func (m *Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewConfirm:
		return m.confirmView.View()
	default:
		if list, ok := m.page.ActiveList(); ok {
			return list.View()
		}
		return ""
	}
}

// summary returns the right-hand side of the header.
func (m *Model) summary() string {
	if m.scanner.State() == scan.Scanning {
		return "scanning"
	}
	if !m.statsKnown {
		return "stats unavailable"
	}
	return fmt.Sprintf("%s analyzed · %s unsubscribed · %s skipped",
		humanize.Comma(int64(m.stats.TotalAnalyzed)),
		humanize.Comma(int64(m.stats.Unsubscribed)),
		humanize.Comma(int64(m.stats.Skipped)),
	)
}

// statusText returns the status bar message, falling back to key hints.
func (m *Model) statusText() string {
	if m.status != "" {
		return m.status
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		return "esc back | u unsubscribe | s skip | j/k scroll"
	case ViewConfirm:
		return "←/→ choose | enter confirm | esc cancel"
	default:
		return m.helpView.ShortView()
	}
}

// setStatus shows an informational message in the status bar.
func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

// setError surfaces a failure in the status bar when enabled.
func (m *Model) setError(text string) {
	if !m.cfg.UI.ShowErrors {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = text
	m.statusErr = true
}
