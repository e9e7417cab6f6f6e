package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/unsubmgr/internal/keys"
)

func TestView(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)

	full := m.View()
	assert.Contains(t, full, "Keyboard Shortcuts")
	assert.Contains(t, full, "unsubscribe")
	assert.Contains(t, full, "command palette")

	short := m.ShortView()
	assert.Contains(t, short, "scan for emails")
	assert.NotContains(t, short, "command palette")
}
