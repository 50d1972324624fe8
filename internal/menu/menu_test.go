package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fnflip/internal/hotkey"
)

func TestBuildLayout(t *testing.T) {
	m := Build(State{Enabled: true, LaunchAtLogin: true, Shortcut: hotkey.Default})

	var layout []string
	for _, it := range m.Items {
		if it.Separator {
			layout = append(layout, "---")
			continue
		}
		layout = append(layout, it.Title)
	}
	assert.Equal(t, []string{
		"Current: Standard F1, F2, etc.",
		"Switch to Hardware Keys",
		"---",
		"Launch at Login",
		"---",
		"About FnFlip…",
		"---",
		"Quit",
	}, layout)

	header := m.Item(TagHeader)
	require.NotNil(t, header)
	assert.False(t, header.Enabled, "header is informational")

	assert.Equal(t, "⌘⌥F", m.Item(TagToggle).Shortcut)
	assert.Equal(t, "⌘Q", m.Item(TagQuit).Shortcut)

	launch := m.Item(TagLaunchAtLogin)
	assert.True(t, launch.Checkable)
	assert.True(t, launch.Checked)
}

func TestBuildHardwareMode(t *testing.T) {
	m := Build(State{Enabled: false, Shortcut: hotkey.Default})

	assert.Equal(t, "Current: Hardware Keys (brightness and volume)", m.Item(TagHeader).Title)
	assert.Equal(t, "Switch to Standard F1, F2, etc.", m.Item(TagToggle).Title)
	assert.False(t, m.Item(TagLaunchAtLogin).Checked)
}

func TestRefreshUpdatesInPlace(t *testing.T) {
	m := Build(State{Enabled: false, Shortcut: hotkey.Default})
	toggle := m.Item(TagToggle)
	count := len(m.Items)

	Refresh(m, State{Enabled: true, LaunchAtLogin: true, Shortcut: hotkey.Default})

	assert.Same(t, toggle, m.Item(TagToggle))
	assert.Len(t, m.Items, count)
	assert.Equal(t, "Current: Standard F1, F2, etc.", m.Item(TagHeader).Title)
	assert.Equal(t, "Switch to Hardware Keys", toggle.Title)
	assert.True(t, m.Item(TagLaunchAtLogin).Checked)
}

func TestItemUnknownTag(t *testing.T) {
	assert.Nil(t, Build(State{}).Item(Tag(42)))
}
