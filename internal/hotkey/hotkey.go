// Package hotkey регистрирует глобальное сочетание клавиш для переключения.
package hotkey

import (
	"fmt"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

// Binding - системная регистрация одного сочетания.
type Binding interface {
	Register() error
	Unregister() error
	// Listen вызывает fire на каждое нажатие, пока не закрыт stop.
	Listen(stop <-chan struct{}, fire func())
}

// systemBinding - регистрация через golang.design/x/hotkey.
type systemBinding struct {
	hk *hotkey.Hotkey
}

// NewBinding создаёт системную регистрацию для сочетания.
func NewBinding(s Shortcut) (Binding, error) {
	key, ok := keyMap[s.Key]
	if !ok {
		return nil, fmt.Errorf("hotkey: unsupported key %q", s.Key)
	}
	mods := make([]hotkey.Modifier, 0, len(s.Modifiers))
	for _, m := range s.Modifiers {
		mod, ok := modifierMap[m]
		if !ok {
			return nil, fmt.Errorf("hotkey: unsupported modifier %q", m)
		}
		mods = append(mods, mod)
	}
	return &systemBinding{hk: hotkey.New(mods, key)}, nil
}

func (b *systemBinding) Register() error   { return b.hk.Register() }
func (b *systemBinding) Unregister() error { return b.hk.Unregister() }

func (b *systemBinding) Listen(stop <-chan struct{}, fire func()) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-b.hk.Keydown():
			if !ok {
				return
			}
			fire()
		case _, ok := <-b.hk.Keyup():
			if !ok {
				return
			}
			// Отпускание клавиши не используется
		}
	}
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}
