package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/unsubmgr/internal/keys"
	"github.com/nhle/unsubmgr/internal/model"
	"github.com/nhle/unsubmgr/internal/render"
	"github.com/nhle/unsubmgr/internal/ui/emaillist"
	"github.com/nhle/unsubmgr/internal/ui/tabs"
)

func newTestPage() *Page {
	k := keys.DefaultKeyMap()
	return NewPage(
		emaillist.New(model.ContainerCandidates, model.ModeCandidate, k, 80, 20),
		emaillist.New(model.ContainerUnsubscribed, model.ModeUnsubscribed, k, 80, 20),
		emaillist.New(model.ContainerSkipped, model.ModeSkipped, k, 80, 20),
	)
}

func TestPage_ResolvesByID(t *testing.T) {
	p := newTestPage()

	_, ok := p.Mount(model.ContainerSkipped)
	assert.True(t, ok)
	_, ok = p.Mount("nope")
	assert.False(t, ok)

	_, ok = p.Panel(model.ContainerUnsubscribed)
	assert.True(t, ok)
	assert.Len(t, p.All(), 3)
	assert.Len(t, p.Lists(), 3)
}

func TestPage_RendererAndTabsShareMounts(t *testing.T) {
	p := newTestPage()
	tb := tabs.New(p,
		tabs.Control{Label: "Candidates", Target: model.ContainerCandidates},
		tabs.Control{Label: "Skipped", Target: model.ContainerSkipped},
	)
	r := render.New(p, nil)

	r.RenderList(model.ContainerSkipped, []model.EmailRecord{{ID: "1"}}, model.ModeSkipped, render.Callbacks{})
	tb.ClickTarget(model.ContainerSkipped)

	active, ok := p.ActiveList()
	require.True(t, ok)
	assert.Equal(t, model.ContainerSkipped, active.ID())
	assert.Equal(t, "Skipped Emails (1)", active.Content().Header.Title)
}

func TestPage_IgnoresDuplicateIDs(t *testing.T) {
	k := keys.DefaultKeyMap()
	first := emaillist.New("x", model.ModeCandidate, k, 10, 10)
	p := NewPage(first, emaillist.New("x", model.ModeSkipped, k, 10, 10))

	assert.Len(t, p.Lists(), 1)
	got, _ := p.List("x")
	assert.Same(t, first, got)
}

func TestLayout(t *testing.T) {
	l := NewLayout(60, 20)
	assert.Equal(t, 17, l.ContentHeight())
	assert.Equal(t, 0, NewLayout(10, 2).ContentHeight())

	header := l.RenderHeader("Unsubscribe Manager", "idle")
	assert.Contains(t, header, "Unsubscribe Manager")
	assert.Contains(t, header, "idle")

	frame := l.RenderWithFrame(header, "tabs", "body", l.RenderStatusBar("q quit", false))
	assert.Equal(t, 20, len(strings.Split(frame, "\n")))
}
