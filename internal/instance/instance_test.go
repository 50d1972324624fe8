package instance

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fnflip/pkg/log"
)

type staticLister struct {
	procs []Process
	err   error
}

func (l staticLister) List(context.Context) ([]Process, error) { return l.procs, l.err }

type recordingRunner struct{ calls []string }

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, strings.Join(append([]string{name}, args...), " "))
	return nil, nil
}

const (
	self  = "/Applications/FnFlip.app/Contents/MacOS/fnflip"
	moved = "/Users/me/Downloads/FnFlip.app/Contents/MacOS/fnflip"
)

func newTestFinder(procs ...Process) (*Finder, *recordingRunner) {
	runner := &recordingRunner{}
	ids := map[string]string{
		self:  "eotles.fnFlip",
		moved: "eotles.fnFlip",
	}
	return &Finder{
		logger:   log.Nop(),
		lister:   staticLister{procs: procs},
		runner:   runner,
		pid:      100,
		uid:      501,
		identity: "eotles.fnFlip",
		identify: func(exe string) string {
			if id, ok := ids[exe]; ok {
				return id
			}
			return exe
		},
	}, runner
}

func TestNoOtherInstance(t *testing.T) {
	f, runner := newTestFinder(
		Process{PID: 100, Exe: self, UID: 501},
		Process{PID: 200, Exe: self, UID: 502},
		Process{PID: 300, Exe: "/usr/bin/vim", UID: 501},
	)

	require.NoError(t, f.HandOff(context.Background()))
	assert.Empty(t, runner.calls)
}

func TestHandOffToExistingInstance(t *testing.T) {
	f, runner := newTestFinder(
		Process{PID: 100, Exe: self, UID: 501},
		Process{PID: 42, Exe: moved, UID: 501},
	)

	err := f.HandOff(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "/usr/bin/osascript -e")
	assert.Contains(t, runner.calls[0], "unix id is 42")
}

func TestListErrorAllowsStartup(t *testing.T) {
	f, _ := newTestFinder()
	f.lister = staticLister{err: errors.New("sysctl failed")}
	assert.NoError(t, f.HandOff(context.Background()))
}

func TestIdentityFromBundle(t *testing.T) {
	app := filepath.Join(t.TempDir(), "FnFlip.app")
	macOS := filepath.Join(app, "Contents", "MacOS")
	require.NoError(t, os.MkdirAll(macOS, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(app, "Contents", "Info.plist"), []byte(`<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>eotles.fnFlip</string>
</dict>
</plist>`), 0o644))

	assert.Equal(t, "eotles.fnFlip", Identity(filepath.Join(macOS, "fnflip")))
}

func TestIdentityFallsBackToPath(t *testing.T) {
	assert.Equal(t, "/usr/local/bin/fnflip", Identity("/usr/local/bin/fnflip"))

	missing := filepath.Join(t.TempDir(), "Gone.app", "Contents", "MacOS", "fnflip")
	assert.Equal(t, missing, Identity(missing), "bundle without Info.plist")
}
