// Package fnkey читает и переключает режим функциональных клавиш macOS.
//
// Весь ввод-вывод настроек выполняется на одном последовательном воркере,
// поэтому чтение, начатое после записи, видит её результат.
package fnkey

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"fnflip/internal/shell"
)

// opTimeout ограничивает одну операцию чтения или переключения.
const opTimeout = 10 * time.Second

// Options задаёт стратегии чтения/записи и доставку результатов.
type Options struct {
	// Primary - основное хранилище (CFPreferences на macOS).
	Primary Store
	// Fallback читается, если в основном хранилище значения нет.
	Fallback Reader
	// Nudger применяет изменения. nil - не применять.
	Nudger Nudger
	// Deliver вызывает completion в UI-цикле. nil - вызов прямо на воркере.
	Deliver func(func())
}

// Toggler - асинхронный доступ к настройке com.apple.keyboard.fnState.
type Toggler struct {
	logger   *zap.SugaredLogger
	primary  Store
	fallback Reader
	nudger   Nudger
	deliver  func(func())

	mu     sync.Mutex
	closed bool
	jobs   chan func()
	done   chan struct{}
}

// New создаёт Toggler и запускает его воркер.
func New(logger *zap.SugaredLogger, opts Options) *Toggler {
	t := &Toggler{
		logger:   logger,
		primary:  opts.Primary,
		fallback: opts.Fallback,
		nudger:   opts.Nudger,
		deliver:  opts.Deliver,
		jobs:     make(chan func(), 16),
		done:     make(chan struct{}),
	}
	if t.primary == nil {
		t.primary = NewPlatformStore()
	}
	if t.deliver == nil {
		t.deliver = func(fn func()) { fn() }
	}
	go t.worker()
	return t
}

// NewDefault создаёт Toggler с платформенным хранилищем, запасным чтением
// через defaults(1) и подталкиванием через activateSettings.
func NewDefault(logger *zap.SugaredLogger, deliver func(func())) *Toggler {
	runner := shell.Exec{}
	return New(logger, Options{
		Primary:  NewPlatformStore(),
		Fallback: DefaultsStore{Runner: runner},
		Nudger:   ActivateSettings{Runner: runner},
		Deliver:  deliver,
	})
}

// ReadAsync читает текущее значение. completion вызывается через Deliver.
func (t *Toggler) ReadAsync(completion func(bool)) {
	t.enqueue(func() {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		value := t.read(ctx)
		t.deliver(func() { completion(value) })
	})
}

// ToggleAsync инвертирует значение и сообщает новое через Deliver.
// Ошибки записи не возвращаются: результат - всегда инверсия прочитанного.
func (t *Toggler) ToggleAsync(completion func(bool)) {
	t.enqueue(func() {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		value := t.toggle(ctx)
		t.deliver(func() { completion(value) })
	})
}

// Close останавливает воркер после уже поставленных задач.
func (t *Toggler) Close() {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.jobs)
	}
	t.mu.Unlock()
	<-t.done
}

func (t *Toggler) enqueue(job func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		t.logger.Debugw("Toggler закрыт, задача отброшена")
		return
	}
	t.jobs <- job
}

func (t *Toggler) worker() {
	defer close(t.done)
	for job := range t.jobs {
		job()
	}
}

// read возвращает true, если включены стандартные F1..F12.
// Недоступное значение трактуется как false.
func (t *Toggler) read(ctx context.Context) bool {
	value, err := t.primary.Read(ctx)
	if err == nil {
		return value
	}
	if !errors.Is(err, ErrNotFound) {
		t.logger.Debugw("Основное хранилище недоступно", "error", err)
	}

	if t.fallback == nil {
		return false
	}
	value, err = t.fallback.Read(ctx)
	if err != nil {
		t.logger.Debugw("Запасное чтение не удалось", "error", err)
		return false
	}
	return value
}

func (t *Toggler) toggle(ctx context.Context) bool {
	newValue := !t.read(ctx)

	for _, scope := range Scopes {
		if err := t.primary.Write(ctx, scope, newValue); err != nil {
			t.logger.Debugw("Запись настройки не удалась", "scope", scope.String(), "error", err)
		}
	}

	if t.nudger != nil {
		if err := t.nudger.Nudge(ctx); err != nil {
			t.logger.Debugw("activateSettings не сработал", "error", err)
		}
	}

	t.logger.Infow("Режим функциональных клавиш переключён", "standard", newValue)
	return newValue
}
