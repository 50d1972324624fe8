package app

import (
	"sync"

	"fnflip/internal/iconkit"
)

// EnabledState - известный приложению режим функциональных клавиш.
type EnabledState int

const (
	// Unknown - значение ещё не прочитано.
	Unknown EnabledState = iota
	// Disabled - F1..F12 управляют яркостью, громкостью и т.п.
	Disabled
	// Enabled - F1..F12 работают как стандартные функциональные клавиши.
	Enabled
)

// StateOf переводит значение настройки в EnabledState.
func StateOf(standard bool) EnabledState {
	if standard {
		return Enabled
	}
	return Disabled
}

func (s EnabledState) String() string {
	switch s {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// IconState - иконка для пары (состояние, идёт ли переключение).
func IconState(state EnabledState, working bool) iconkit.State {
	switch {
	case state == Unknown:
		return iconkit.WorkingFromOff
	case working && state == Enabled:
		return iconkit.WorkingFromOn
	case working:
		return iconkit.WorkingFromOff
	case state == Enabled:
		return iconkit.On
	default:
		return iconkit.Off
	}
}

// stateCell хранит EnabledState и оповещает подписчиков при каждом Set.
type stateCell struct {
	mu        sync.Mutex
	value     EnabledState
	next      int
	observers map[int]func(EnabledState)
}

func newStateCell() *stateCell {
	return &stateCell{observers: make(map[int]func(EnabledState))}
}

// Get возвращает текущее значение.
func (c *stateCell) Get() EnabledState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set сохраняет значение и вызывает всех подписчиков, даже если оно не изменилось.
func (c *stateCell) Set(v EnabledState) {
	c.mu.Lock()
	c.value = v
	// Подписчики вызываются в порядке подписки
	fns := make([]func(EnabledState), 0, len(c.observers))
	for id := 0; id < c.next; id++ {
		if fn, ok := c.observers[id]; ok {
			fns = append(fns, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe добавляет подписчика; cancel отписывает его.
func (c *stateCell) Subscribe(fn func(EnabledState)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}
