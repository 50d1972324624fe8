package login

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"fnflip/pkg/log"
)

// fakeRunner изображает launchctl: print успешен, если агент загружен.
type fakeRunner struct {
	mu     sync.Mutex
	loaded bool
	calls  []string
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, strings.Join(append([]string{name}, args...), " "))
	if len(args) > 0 && args[0] == "print" && !r.loaded {
		return nil, errors.New("exit status 113")
	}
	return nil, nil
}

func (r *fakeRunner) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

type memMarker struct {
	applied bool
	marks   int
}

func (m *memMarker) LaunchAtLoginDefaultApplied() bool { return m.applied }

func (m *memMarker) MarkLaunchAtLoginDefaultApplied() error {
	m.applied = true
	m.marks++
	return nil
}

const exePath = "/Applications/FnFlip.app/Contents/MacOS/fnflip"

func newTestManager(t *testing.T) (*Manager, *fakeRunner, *memMarker) {
	t.Helper()
	runner := &fakeRunner{}
	marker := &memMarker{}
	m := &Manager{
		logger:     log.Nop(),
		label:      Label,
		agentsDir:  filepath.Join(t.TempDir(), "Library", "LaunchAgents"),
		uid:        501,
		runner:     runner,
		marker:     marker,
		executable: func() (string, error) { return exePath, nil },
		openURL:    func(string) error { return nil },
	}
	return m, runner, marker
}

func reloadCalls(m *Manager) []string {
	return []string{
		"/bin/launchctl bootout gui/501/" + Label,
		"/bin/launchctl bootstrap gui/501 " + m.Path(),
		"/bin/launchctl enable gui/501/" + Label,
	}
}

func readDict(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var dict map[string]interface{}
	_, err = plist.Unmarshal(data, &dict)
	require.NoError(t, err)
	return dict
}

func writeFile(t *testing.T, m *Manager, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(m.agentsDir, 0o755))
	require.NoError(t, os.WriteFile(m.Path(), []byte(content), 0o644))
}

func TestSetEnabledWritesDescriptor(t *testing.T) {
	m, runner, _ := newTestManager(t)

	require.NoError(t, m.SetEnabled(context.Background(), true))

	dict := readDict(t, m.Path())
	assert.Equal(t, Label, dict["Label"])
	assert.Equal(t, true, dict["RunAtLoad"])
	assert.Equal(t, false, dict["KeepAlive"])
	assert.Equal(t, "Interactive", dict["ProcessType"])
	assert.Equal(t, []interface{}{exePath}, dict["ProgramArguments"])
	assert.Equal(t, map[string]interface{}{"PATH": "/usr/bin:/bin:/usr/sbin:/sbin"}, dict["EnvironmentVariables"])
	assert.Equal(t, reloadCalls(m), runner.calls)

	entries, err := os.ReadDir(m.agentsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSetDisabledRemovesDescriptor(t *testing.T) {
	m, runner, _ := newTestManager(t)
	require.NoError(t, m.SetEnabled(context.Background(), true))
	runner.reset()

	require.NoError(t, m.SetEnabled(context.Background(), false))
	_, err := os.Stat(m.Path())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, []string{"/bin/launchctl bootout gui/501/" + Label}, runner.calls)

	require.NoError(t, m.SetEnabled(context.Background(), false), "disabling twice is fine")
}

func TestSetEnabledReportsDirectoryError(t *testing.T) {
	m, _, _ := newTestManager(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	m.agentsDir = filepath.Join(blocker, "LaunchAgents")

	err := m.SetEnabled(context.Background(), true)
	var loginErr *Error
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "create", loginErr.Op)
	assert.Contains(t, err.Error(), "could not create")
}

func TestIsEnabled(t *testing.T) {
	m, runner, _ := newTestManager(t)
	assert.False(t, m.IsEnabled(context.Background()))
	runner.loaded = true
	assert.True(t, m.IsEnabled(context.Background()))
	assert.Equal(t, "/bin/launchctl print gui/501/"+Label, runner.calls[0])
}

func TestRepairMissingDescriptor(t *testing.T) {
	m, runner, _ := newTestManager(t)

	assert.False(t, m.RepairIfNeeded(context.Background()))
	assert.Empty(t, runner.calls)
	_, err := os.Stat(m.agentsDir)
	assert.ErrorIs(t, err, os.ErrNotExist, "nothing is created")
}

func TestRepairMalformedDescriptor(t *testing.T) {
	m, runner, _ := newTestManager(t)
	writeFile(t, m, `<?xml version="1.0"?><plist version="1.0"><dict><key>Label</key>`)

	assert.True(t, m.RepairIfNeeded(context.Background()))
	assert.Equal(t, []interface{}{exePath}, readDict(t, m.Path())["ProgramArguments"])
	assert.Equal(t, reloadCalls(m), runner.calls)
}

func TestRepairPathMismatch(t *testing.T) {
	m, runner, _ := newTestManager(t)
	writeFile(t, m, `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>Label</key><string>eotles.fnFlip.launchagent</string>
	<key>Program</key><string>/old/place/fnflip</string>
	<key>ProgramArguments</key><array><string>/old/place/fnflip</string></array>
	<key>StandardOutPath</key><string>/tmp/fnflip.log</string>
</dict>
</plist>`)

	assert.True(t, m.RepairIfNeeded(context.Background()))

	dict := readDict(t, m.Path())
	assert.Equal(t, []interface{}{exePath}, dict["ProgramArguments"])
	assert.NotContains(t, dict, "Program")
	assert.Equal(t, "/tmp/fnflip.log", dict["StandardOutPath"], "other keys are kept")
	assert.Equal(t, reloadCalls(m), runner.calls)
}

func TestRepairProgramKeyOnly(t *testing.T) {
	m, _, _ := newTestManager(t)
	writeFile(t, m, `<?xml version="1.0"?><plist version="1.0"><dict>
<key>Program</key><string>`+exePath+`</string>
</dict></plist>`)
	m.runner.(*fakeRunner).loaded = true

	assert.False(t, m.RepairIfNeeded(context.Background()), "Program matches and agent is loaded")
}

func TestRepairNotRegistered(t *testing.T) {
	m, runner, _ := newTestManager(t)
	require.NoError(t, m.SetEnabled(context.Background(), true))
	before, err := os.ReadFile(m.Path())
	require.NoError(t, err)
	runner.reset()

	assert.True(t, m.RepairIfNeeded(context.Background()))
	after, err := os.ReadFile(m.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, append([]string{"/bin/launchctl print gui/501/" + Label}, reloadCalls(m)...), runner.calls)
}

func TestRepairHealthy(t *testing.T) {
	m, runner, _ := newTestManager(t)
	require.NoError(t, m.SetEnabled(context.Background(), true))
	runner.loaded = true
	runner.reset()

	assert.False(t, m.RepairIfNeeded(context.Background()))
	assert.Equal(t, []string{"/bin/launchctl print gui/501/" + Label}, runner.calls)
}

func TestEnableByDefaultOnce(t *testing.T) {
	m, _, marker := newTestManager(t)

	assert.True(t, m.EnableByDefaultIfUnset(context.Background()))
	assert.True(t, marker.applied)
	_, err := os.Stat(m.Path())
	require.NoError(t, err)

	require.NoError(t, m.SetEnabled(context.Background(), false))
	assert.False(t, m.EnableByDefaultIfUnset(context.Background()), "user choice is respected")
	_, err = os.Stat(m.Path())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 1, marker.marks)
}

func TestEnableByDefaultKeepsExistingAgent(t *testing.T) {
	m, runner, marker := newTestManager(t)
	writeFile(t, m, "existing")

	assert.False(t, m.EnableByDefaultIfUnset(context.Background()))
	assert.True(t, marker.applied)
	assert.Empty(t, runner.calls)

	data, err := os.ReadFile(m.Path())
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestOpenSettings(t *testing.T) {
	m, _, _ := newTestManager(t)
	var opened string
	m.openURL = func(u string) error { opened = u; return nil }

	require.NoError(t, m.OpenSettings())
	assert.Equal(t, "x-apple.systempreferences:com.apple.LoginItems-Settings.extension", opened)
}
