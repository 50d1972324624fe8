package preview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fnflip/internal/iconkit"
)

func TestFramesCoverAllStates(t *testing.T) {
	r := iconkit.NewRenderer(iconkit.DefaultStyle())
	frames := Frames(r, 0)

	require.Len(t, frames, 4)
	for i, f := range frames {
		assert.Equal(t, iconkit.AllStates[i], f.State)
		assert.Equal(t, 48, f.Image.Bounds().Dx())
	}
}

func TestFramesAnimateOnlyWorkingStates(t *testing.T) {
	r := iconkit.NewRenderer(iconkit.DefaultStyle())
	a := Frames(r, 0)
	b := Frames(r, 125*time.Millisecond)

	for i := range a {
		if a[i].State.Working() {
			assert.NotEqual(t, a[i].Image.Pix, b[i].Image.Pix, a[i].State.String())
		} else {
			assert.Equal(t, a[i].Image.Pix, b[i].Image.Pix, a[i].State.String())
		}
	}
}

func TestFramesFullTurnRepeats(t *testing.T) {
	r := iconkit.NewRenderer(iconkit.DefaultStyle())
	a := Frames(r, 0)
	b := Frames(r, time.Second)

	for i := range a {
		assert.Equal(t, a[i].Image.Pix, b[i].Image.Pix, a[i].State.String())
	}
}
