package hotkey

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// debounceInterval защищает от автоповтора клавиатуры.
	debounceInterval = 300 * time.Millisecond
	// unregisterTimeout ограничивает ожидание системной отмены регистрации.
	unregisterTimeout = 500 * time.Millisecond
)

// ErrUnregisterTimeout - система не ответила на отмену регистрации вовремя.
var ErrUnregisterTimeout = errors.New("hotkey: unregister timed out")

// Handle идентифицирует запись в таблице регистраций.
type Handle uint64

type registration struct {
	binding  Binding
	action   func()
	lastFire time.Time
}

// Registrar владеет не более чем одной регистрацией сочетания.
// Нажатия разрешаются через таблицу, поэтому после Unregister
// запоздавшие события отбрасываются.
type Registrar struct {
	logger     *zap.SugaredLogger
	shortcut   Shortcut
	newBinding func(Shortcut) (Binding, error)
	now        func() time.Time

	mu      sync.Mutex
	table   map[Handle]*registration
	next    Handle
	current Handle
	stop    chan struct{}
}

// NewRegistrar создаёт регистратор для сочетания с системной регистрацией.
func NewRegistrar(logger *zap.SugaredLogger, shortcut Shortcut) *Registrar {
	return newRegistrar(logger, shortcut, NewBinding)
}

func newRegistrar(logger *zap.SugaredLogger, shortcut Shortcut, newBinding func(Shortcut) (Binding, error)) *Registrar {
	return &Registrar{
		logger:     logger,
		shortcut:   shortcut,
		newBinding: newBinding,
		now:        time.Now,
		table:      make(map[Handle]*registration),
	}
}

// Shortcut возвращает обслуживаемое сочетание.
func (r *Registrar) Shortcut() Shortcut {
	return r.shortcut
}

// Register снимает предыдущую регистрацию и регистрирует action заново.
func (r *Registrar) Register(action func()) error {
	if err := r.Unregister(); err != nil {
		r.logger.Warnw("Не удалось снять предыдущую горячую клавишу", "error", err)
	}

	r.logger.Infow("Регистрация горячей клавиши", "shortcut", r.shortcut.String())

	binding, err := r.newBinding(r.shortcut)
	if err != nil {
		return err
	}
	if err := binding.Register(); err != nil {
		return fmt.Errorf("hotkey: register %s: %w", r.shortcut, err)
	}

	r.mu.Lock()
	r.next++
	handle := r.next
	r.table[handle] = &registration{binding: binding, action: action}
	r.current = handle
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	go binding.Listen(stop, func() { r.fire(handle) })

	r.logger.Infow("Горячая клавиша зарегистрирована", "shortcut", r.shortcut.String())
	return nil
}

// Unregister снимает текущую регистрацию. Повторный вызов ничего не делает.
func (r *Registrar) Unregister() error {
	r.mu.Lock()
	reg, ok := r.table[r.current]
	delete(r.table, r.current)
	r.current = 0
	stop := r.stop
	r.stop = nil
	r.mu.Unlock()

	if !ok {
		return nil
	}
	close(stop)

	// Системная отмена может зависнуть, если главный поток занят
	done := make(chan error, 1)
	go func() { done <- reg.binding.Unregister() }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("hotkey: unregister %s: %w", r.shortcut, err)
		}
		return nil
	case <-time.After(unregisterTimeout):
		return ErrUnregisterTimeout
	}
}

// Active возвращает число живых регистраций (0 или 1).
func (r *Registrar) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.table)
}

func (r *Registrar) fire(handle Handle) {
	r.mu.Lock()
	reg, ok := r.table[handle]
	if !ok {
		r.mu.Unlock()
		r.logger.Debugw("Нажатие после снятия регистрации отброшено")
		return
	}
	now := r.now()
	if now.Sub(reg.lastFire) < debounceInterval {
		r.mu.Unlock()
		return
	}
	reg.lastFire = now
	action := reg.action
	r.mu.Unlock()

	if action != nil {
		action()
	}
}
