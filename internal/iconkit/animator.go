package iconkit

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Target - кнопка строки меню, принимающая кадры.
type Target interface {
	SetIcon(icon Icon)
}

// ticker отделён от time.Ticker ради тестов.
type ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Animator показывает статичные кадры и крутит стрелки в Working-состояниях.
// Одновременно работает не больше одного тикера.
type Animator struct {
	renderer  *Renderer
	logger    *zap.SugaredLogger
	newTicker func(time.Duration) ticker

	ctl sync.Mutex // сериализует запуск и остановку

	mu     sync.Mutex
	target Target
	state  State
	angle  float64
	stop   chan struct{}
	done   chan struct{}
}

// NewAnimator создаёт аниматор поверх рендерера.
func NewAnimator(renderer *Renderer, logger *zap.SugaredLogger) *Animator {
	return &Animator{
		renderer:  renderer,
		logger:    logger,
		newTicker: newTimeTicker,
	}
}

// Apply запоминает target и показывает на нём состояние state.
func (a *Animator) Apply(target Target, state State) {
	a.ctl.Lock()
	defer a.ctl.Unlock()

	a.stopLocked()

	a.mu.Lock()
	a.target = target
	a.state = state
	a.angle = 0
	a.mu.Unlock()

	a.push(target, state, 0)

	if !state.Working() {
		return
	}

	style := a.renderer.Style()
	stop := make(chan struct{})
	done := make(chan struct{})
	tk := a.newTicker(style.FrameInterval())

	a.mu.Lock()
	a.stop, a.done = stop, done
	a.mu.Unlock()

	go a.loop(tk, style.StepPerFrame(), stop, done)
}

// Stop останавливает анимацию, если она идёт. Текущий кадр остаётся.
func (a *Animator) Stop() {
	a.ctl.Lock()
	defer a.ctl.Unlock()
	a.stopLocked()
}

// Detach забывает target; последующие тики ничего не рисуют.
func (a *Animator) Detach() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.target = nil
}

// Running сообщает, крутятся ли стрелки.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}

// Angle возвращает текущий угол поворота стрелок.
func (a *Animator) Angle() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.angle
}

// stopLocked вызывается под a.ctl и ждёт завершения горутины тикера.
func (a *Animator) stopLocked() {
	a.mu.Lock()
	stop, done := a.stop, a.done
	a.stop, a.done = nil, nil
	a.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (a *Animator) loop(tk ticker, step float64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer tk.Stop()

	for {
		select {
		case <-stop:
			return
		case <-tk.C():
			a.tick(step)
		}
	}
}

func (a *Animator) tick(step float64) {
	a.mu.Lock()
	a.angle = wrapAngle(a.angle + step)
	target, state, angle := a.target, a.state, a.angle
	a.mu.Unlock()

	a.push(target, state, angle)
}

func (a *Animator) push(target Target, state State, angle float64) {
	if target == nil {
		return
	}
	icon, err := a.renderer.Icon(state, angle)
	if err != nil {
		a.logger.Debugw("Не удалось отрисовать иконку", "state", state.String(), "error", err)
		return
	}
	target.SetIcon(icon)
}
