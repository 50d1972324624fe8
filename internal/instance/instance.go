// Package instance не даёт запустить вторую копию FnFlip для того же пользователя.
package instance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"fnflip/internal/shell"
)

// ErrAlreadyRunning - управление передано уже запущенной копии.
var ErrAlreadyRunning = errors.New("instance: another copy is already running")

// Process - запущенный процесс.
type Process struct {
	PID int32
	Exe string
	UID uint32
}

// Lister перечисляет процессы.
type Lister interface {
	List(ctx context.Context) ([]Process, error)
}

// systemLister читает список процессов через gopsutil.
type systemLister struct{}

func (systemLister) List(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		exe, err := p.ExeWithContext(ctx)
		if err != nil || exe == "" {
			// Чужие процессы могут быть недоступны
			continue
		}
		uids, err := p.UidsWithContext(ctx)
		if err != nil || len(uids) == 0 {
			continue
		}
		out = append(out, Process{PID: p.Pid, Exe: exe, UID: uids[0]})
	}
	return out, nil
}

// Finder ищет другую копию приложения и активирует её.
type Finder struct {
	logger   *zap.SugaredLogger
	lister   Lister
	runner   shell.Runner
	pid      int32
	uid      uint32
	identity string
	identify func(exe string) string
}

// NewFinder создаёт Finder для текущего процесса.
func NewFinder(logger *zap.SugaredLogger) (*Finder, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("instance: executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return &Finder{
		logger:   logger,
		lister:   systemLister{},
		runner:   shell.Exec{},
		pid:      int32(os.Getpid()),
		uid:      uint32(os.Getuid()),
		identity: Identity(exe),
		identify: Identity,
	}, nil
}

// Existing возвращает другую копию того же приложения того же пользователя.
func (f *Finder) Existing(ctx context.Context) (Process, bool) {
	procs, err := f.lister.List(ctx)
	if err != nil {
		f.logger.Debugw("Не удалось получить список процессов", "error", err)
		return Process{}, false
	}
	for _, p := range procs {
		if p.PID == f.pid || p.UID != f.uid {
			continue
		}
		if f.identify(p.Exe) == f.identity {
			return p, true
		}
	}
	return Process{}, false
}

// HandOff активирует уже запущенную копию и возвращает ErrAlreadyRunning.
// nil - других копий нет, можно продолжать запуск.
func (f *Finder) HandOff(ctx context.Context) error {
	existing, ok := f.Existing(ctx)
	if !ok {
		return nil
	}
	f.logger.Infow("FnFlip уже запущен, передаём управление", "pid", existing.PID)

	script := fmt.Sprintf(`tell application "System Events" to set frontmost of (first process whose unix id is %d) to true`, existing.PID)
	if _, err := f.runner.Run(ctx, "/usr/bin/osascript", "-e", script); err != nil {
		f.logger.Debugw("Не удалось активировать запущенную копию", "error", err)
	}
	return ErrAlreadyRunning
}
