package render

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/unsubmgr/internal/model"
)

type fakeMount struct {
	replaced int
	view     View
}

func (f *fakeMount) Replace(v View) {
	f.replaced++
	f.view = v
}

type idMsg struct {
	kind string
	id   string
}

// recorder collects callback invocations.
type recorder struct {
	unsubscribed []string
	skipped      []string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnUnsubscribe: func(id string) tea.Cmd {
			r.unsubscribed = append(r.unsubscribed, id)
			return func() tea.Msg { return idMsg{kind: "unsubscribe", id: id} }
		},
		OnSkip: func(id string) tea.Cmd {
			r.skipped = append(r.skipped, id)
			return func() tea.Msg { return idMsg{kind: "skip", id: id} }
		},
	}
}

func sampleRecords() []model.EmailRecord {
	return []model.EmailRecord{
		{ID: "3", Sender: "c@x.com", Subject: "C", Date: "2024-01-03"},
		{ID: "1", Sender: "a@x.com", Subject: "A", Date: "2024-01-01"},
		{ID: "3", Sender: "c@x.com", Subject: "C", Date: "2024-01-03"},
	}
}

func TestBuild_EmptyList(t *testing.T) {
	for _, mode := range []model.DisplayMode{model.ModeCandidate, model.ModeUnsubscribed, model.ModeSkipped} {
		t.Run(mode.String(), func(t *testing.T) {
			v := Build(nil, mode, Callbacks{})
			assert.Equal(t, 0, v.Header.Count)
			assert.Contains(t, v.Header.Title, "(0)")
			assert.Empty(t, v.Cards)
			assert.Zero(t, v.ActionCount())
		})
	}
}

func TestBuild_Titles(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, "Email Candidates (3)", Build(records, model.ModeCandidate, Callbacks{}).Header.Title)
	assert.Equal(t, "Unsubscribed Emails (3)", Build(records, model.ModeUnsubscribed, Callbacks{}).Header.Title)
	assert.Equal(t, "Skipped Emails (3)", Build(records, model.ModeSkipped, Callbacks{}).Header.Title)
}

func TestBuild_TriggerOnlyForCandidates(t *testing.T) {
	v := Build(nil, model.ModeCandidate, Callbacks{})
	require.NotNil(t, v.Header.Trigger)
	assert.Equal(t, TriggerLabel, v.Header.Trigger.Label)

	assert.Nil(t, Build(nil, model.ModeUnsubscribed, Callbacks{}).Header.Trigger)
	assert.Nil(t, Build(nil, model.ModeSkipped, Callbacks{}).Header.Trigger)
}

func TestBuild_AffordancesPerMode(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		mode      model.DisplayMode
		perCard   int
		indicator Indicator
		kinds     []ActionKind
	}{
		{model.ModeCandidate, 2, IndicatorNone, []ActionKind{ActionUnsubscribe, ActionSkip}},
		{model.ModeUnsubscribed, 0, IndicatorUnsubscribed, nil},
		{model.ModeSkipped, 1, IndicatorSkipped, []ActionKind{ActionUnsubscribe}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			v := Build(records, tt.mode, Callbacks{})
			require.Len(t, v.Cards, len(records))
			assert.Equal(t, tt.perCard*len(records), v.ActionCount())

			for i, card := range v.Cards {
				assert.Equal(t, records[i], card.Record, "display order must equal input order")
				assert.Equal(t, tt.indicator, card.Indicator)
				require.Len(t, card.Actions, tt.perCard)
				for j, a := range card.Actions {
					assert.Equal(t, tt.kinds[j], a.Kind)
					assert.Equal(t, records[i].ID, a.EmailID)
				}
			}
		})
	}
}

func TestAction_ActivateUsesOwnID(t *testing.T) {
	rec := &recorder{}
	v := Build(sampleRecords(), model.ModeCandidate, rec.callbacks())

	skip, ok := v.Cards[1].Action(ActionSkip)
	require.True(t, ok)
	cmd := skip.Activate()
	require.NotNil(t, cmd)
	assert.Equal(t, idMsg{kind: "skip", id: "1"}, cmd())

	unsub, ok := v.Cards[2].Action(ActionUnsubscribe)
	require.True(t, ok)
	unsub.Activate()

	assert.Equal(t, []string{"1"}, rec.skipped)
	assert.Equal(t, []string{"3"}, rec.unsubscribed)
}

func TestAction_InertWithoutIDOrCallback(t *testing.T) {
	rec := &recorder{}
	v := Build([]model.EmailRecord{{Subject: "no id"}}, model.ModeCandidate, rec.callbacks())
	for _, a := range v.Cards[0].Actions {
		assert.False(t, a.Enabled())
		assert.Nil(t, a.Activate())
	}
	assert.Empty(t, rec.unsubscribed)
	assert.Empty(t, rec.skipped)

	v = Build(sampleRecords(), model.ModeCandidate, Callbacks{})
	a, _ := v.Cards[0].Action(ActionUnsubscribe)
	assert.False(t, a.Enabled())
	assert.Nil(t, a.Activate())
}

func TestSkippedCardHasNoSkipAction(t *testing.T) {
	v := Build(sampleRecords(), model.ModeSkipped, Callbacks{})
	_, ok := v.Cards[0].Action(ActionSkip)
	assert.False(t, ok)
}

func TestRenderList_ReplacesMount(t *testing.T) {
	mt := &fakeMount{}
	r := New(MountMap{"candidates": mt}, nil)

	ok := r.RenderList("candidates", sampleRecords(), model.ModeCandidate, Callbacks{})
	require.True(t, ok)
	assert.Equal(t, 1, mt.replaced)
	assert.Len(t, mt.view.Cards, 3)

	ok = r.RenderList("candidates", nil, model.ModeCandidate, Callbacks{})
	require.True(t, ok)
	assert.Equal(t, 2, mt.replaced)
	assert.Empty(t, mt.view.Cards)
	assert.Equal(t, "Email Candidates (0)", mt.view.Header.Title)
}

func TestRenderList_MissingContainerIsNoop(t *testing.T) {
	mt := &fakeMount{}
	r := New(MountMap{"candidates": mt}, nil)

	assert.NotPanics(t, func() {
		assert.False(t, r.RenderList("nowhere", sampleRecords(), model.ModeCandidate, Callbacks{}))
	})
	assert.Zero(t, mt.replaced)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Unsubscribe", ActionUnsubscribe.Label())
	assert.Equal(t, "Skip", ActionSkip.Label())
	assert.Equal(t, "✓ Unsubscribed", IndicatorUnsubscribed.Label())
	assert.Equal(t, "⊝ Skipped", IndicatorSkipped.Label())
	assert.Empty(t, IndicatorNone.Label())
}
