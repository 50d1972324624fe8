package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredits(t *testing.T) {
	text := Credits("", "⌘⌥F")
	assert.Contains(t, text, "Switch how your function keys behave.")
	assert.Contains(t, text, "Shortcut: ⌘⌥F")
	assert.NotContains(t, text, "{shortcut}")
}

func TestCreditsWithVersion(t *testing.T) {
	text := Credits("1.2.0", "⌘⌥F")
	assert.Contains(t, text, "Version 1.2.0\n\nSwitch how")
}
