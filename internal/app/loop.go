package app

import "sync"

// uiLoop - последовательная очередь, в которой живёт всё состояние контроллера.
type uiLoop struct {
	jobs chan func()
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func newUILoop() *uiLoop {
	l := &uiLoop{
		jobs: make(chan func(), 64),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *uiLoop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.jobs:
			fn()
		case <-l.quit:
			return
		}
	}
}

// Post ставит fn в очередь. После Close вызов отбрасывается.
func (l *uiLoop) Post(fn func()) {
	select {
	case <-l.quit:
		return
	default:
	}
	select {
	case l.jobs <- fn:
	case <-l.quit:
	}
}

// Call выполняет fn в цикле и ждёт завершения.
func (l *uiLoop) Call(fn func()) {
	finished := make(chan struct{})
	l.Post(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
	case <-l.done:
	}
}

// Close останавливает цикл; задачи, оставшиеся в очереди, не выполняются.
func (l *uiLoop) Close() {
	l.once.Do(func() { close(l.quit) })
	<-l.done
}
