package hotkey

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fnflip/pkg/log"
)

type fakeBinding struct {
	mu            sync.Mutex
	registered    bool
	unregisters   int
	registerErr   error
	blockUnreg    chan struct{}
	fires         chan func()
	stoppedListen chan struct{}
}

func newFakeBinding() *fakeBinding {
	return &fakeBinding{
		fires:         make(chan func(), 1),
		stoppedListen: make(chan struct{}),
	}
}

func (b *fakeBinding) Register() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.registerErr != nil {
		return b.registerErr
	}
	b.registered = true
	return nil
}

func (b *fakeBinding) Unregister() error {
	if b.blockUnreg != nil {
		<-b.blockUnreg
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registered = false
	b.unregisters++
	return nil
}

func (b *fakeBinding) Listen(stop <-chan struct{}, fire func()) {
	b.fires <- fire
	<-stop
	close(b.stoppedListen)
}

func (b *fakeBinding) press(t *testing.T) func() {
	t.Helper()
	select {
	case fire := <-b.fires:
		return fire
	case <-time.After(time.Second):
		t.Fatal("listener was not started")
		return nil
	}
}

type bindingSource struct {
	mu       sync.Mutex
	bindings []*fakeBinding
	next     func() *fakeBinding
}

func (s *bindingSource) new(Shortcut) (Binding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := newFakeBinding()
	if s.next != nil {
		b = s.next()
	}
	s.bindings = append(s.bindings, b)
	return b, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestRegistrar() (*Registrar, *bindingSource, *clock) {
	src := &bindingSource{}
	c := &clock{t: time.Unix(1000, 0)}
	r := newRegistrar(log.Nop(), Default, src.new)
	r.now = c.now
	return r, src, c
}

func TestRegisterIsIdempotent(t *testing.T) {
	r, src, _ := newTestRegistrar()

	require.NoError(t, r.Register(func() {}))
	require.NoError(t, r.Register(func() {}))
	require.NoError(t, r.Register(func() {}))

	assert.Equal(t, 1, r.Active())
	require.Len(t, src.bindings, 3)
	for _, b := range src.bindings[:2] {
		assert.False(t, b.registered)
		assert.Equal(t, 1, b.unregisters)
	}
	assert.True(t, src.bindings[2].registered)
}

func TestPressInvokesAction(t *testing.T) {
	r, src, c := newTestRegistrar()
	var calls int
	require.NoError(t, r.Register(func() { calls++ }))

	fire := src.bindings[0].press(t)
	fire()
	fire() // автоповтор в пределах debounce
	c.t = c.t.Add(debounceInterval)
	fire()

	assert.Equal(t, 2, calls)
}

func TestPressAfterUnregisterIsDropped(t *testing.T) {
	r, src, _ := newTestRegistrar()
	var calls int
	require.NoError(t, r.Register(func() { calls++ }))
	fire := src.bindings[0].press(t)

	require.NoError(t, r.Unregister())
	require.NoError(t, r.Unregister())
	fire()

	assert.Zero(t, calls)
	assert.Zero(t, r.Active())
	<-src.bindings[0].stoppedListen
}

func TestStaleRegistrationDoesNotFire(t *testing.T) {
	r, src, _ := newTestRegistrar()
	var first, second int
	require.NoError(t, r.Register(func() { first++ }))
	stale := src.bindings[0].press(t)
	require.NoError(t, r.Register(func() { second++ }))
	current := src.bindings[1].press(t)

	stale()
	current()

	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestRegisterFailure(t *testing.T) {
	r, src, _ := newTestRegistrar()
	src.next = func() *fakeBinding {
		b := newFakeBinding()
		b.registerErr = errors.New("already taken")
		return b
	}

	err := r.Register(func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	assert.Zero(t, r.Active())
}

func TestUnregisterTimeout(t *testing.T) {
	r, src, _ := newTestRegistrar()
	block := make(chan struct{})
	defer close(block)
	src.next = func() *fakeBinding {
		b := newFakeBinding()
		b.blockUnreg = block
		return b
	}

	require.NoError(t, r.Register(func() {}))
	assert.ErrorIs(t, r.Unregister(), ErrUnregisterTimeout)
	assert.Zero(t, r.Active())
}

func TestShortcutDisplay(t *testing.T) {
	assert.Equal(t, "⌘⌥F", Default.Display())
	assert.Equal(t, "super+alt+f", Default.String())
	assert.Equal(t, "⇧⌃K", Shortcut{Modifiers: []Modifier{ModShift, ModCtrl}, Key: KeyK}.Display())
	assert.Equal(t, "⌘Q", Shortcut{Modifiers: []Modifier{ModSuper}, Key: "q"}.Display())
}
