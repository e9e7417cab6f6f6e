package ui

import (
	"github.com/nhle/unsubmgr/internal/render"
	"github.com/nhle/unsubmgr/internal/ui/emaillist"
	"github.com/nhle/unsubmgr/internal/ui/tabs"
)

// Page owns the list panels and resolves them by container id for the
// renderer and the tab controller.
type Page struct {
	order  []string
	panels map[string]*emaillist.Model
	mounts render.MountMap
}

// NewPage registers the given panels in display order.
func NewPage(panels ...*emaillist.Model) *Page {
	p := &Page{
		panels: make(map[string]*emaillist.Model, len(panels)),
		mounts: make(render.MountMap, len(panels)),
	}
	for _, pl := range panels {
		if _, dup := p.panels[pl.ID()]; dup {
			continue
		}
		p.order = append(p.order, pl.ID())
		p.panels[pl.ID()] = pl
		p.mounts[pl.ID()] = pl
	}
	return p
}

// List returns the panel registered under id.
func (p *Page) List(id string) (*emaillist.Model, bool) {
	pl, ok := p.panels[id]
	return pl, ok
}

// Lists returns the panels in display order.
func (p *Page) Lists() []*emaillist.Model {
	out := make([]*emaillist.Model, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.panels[id])
	}
	return out
}

// ActiveList returns the visible panel.
func (p *Page) ActiveList() (*emaillist.Model, bool) {
	for _, id := range p.order {
		if pl := p.panels[id]; pl.Active() {
			return pl, true
		}
	}
	return nil, false
}

// Mount implements render.Mounts.
func (p *Page) Mount(id string) (render.Mount, bool) {
	return p.mounts.Mount(id)
}

// Panel implements tabs.Panels.
func (p *Page) Panel(id string) (tabs.Panel, bool) {
	pl, ok := p.panels[id]
	if !ok {
		return nil, false
	}
	return pl, true
}

// All implements tabs.Panels.
func (p *Page) All() []tabs.Panel {
	out := make([]tabs.Panel, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.panels[id])
	}
	return out
}

// SetSize resizes every panel.
func (p *Page) SetSize(width, height int) {
	for _, pl := range p.panels {
		pl.SetSize(width, height)
	}
}
