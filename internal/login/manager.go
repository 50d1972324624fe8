// Package login управляет запуском FnFlip при входе в систему через LaunchAgent.
package login

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/browser"
	"go.uber.org/zap"

	"fnflip/internal/shell"
)

const (
	// Label - метка агента и имя файла plist.
	Label = "eotles.fnFlip.launchagent"

	launchctl = "/bin/launchctl"

	// loginItemsURL открывает раздел «Объекты входа» в Системных настройках.
	loginItemsURL = "x-apple.systempreferences:com.apple.LoginItems-Settings.extension"
)

// Error - ошибка работы с каталогом или файлом агента.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Marker хранит признак однократного включения по умолчанию.
type Marker interface {
	LaunchAtLoginDefaultApplied() bool
	MarkLaunchAtLoginDefaultApplied() error
}

// Manager читает и меняет регистрацию LaunchAgent.
type Manager struct {
	logger     *zap.SugaredLogger
	label      string
	agentsDir  string
	uid        int
	runner     shell.Runner
	marker     Marker
	executable func() (string, error)
	openURL    func(string) error
}

// New создаёт Manager для текущего пользователя.
func New(logger *zap.SugaredLogger, marker Marker) (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("login: home directory: %w", err)
	}
	return &Manager{
		logger:     logger,
		label:      Label,
		agentsDir:  filepath.Join(home, "Library", "LaunchAgents"),
		uid:        os.Getuid(),
		runner:     shell.Exec{},
		marker:     marker,
		executable: currentExecutable,
		openURL:    browser.OpenURL,
	}, nil
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

// Path возвращает путь к plist агента.
func (m *Manager) Path() string {
	return filepath.Join(m.agentsDir, m.label+".plist")
}

func (m *Manager) domain() string {
	return "gui/" + strconv.Itoa(m.uid)
}

func (m *Manager) service() string {
	return m.domain() + "/" + m.label
}

// IsEnabled сообщает, зарегистрирован ли агент в launchd.
func (m *Manager) IsEnabled(ctx context.Context) bool {
	_, err := m.runner.Run(ctx, launchctl, "print", m.service())
	return err == nil
}

// SetEnabled включает или выключает запуск при входе.
func (m *Manager) SetEnabled(ctx context.Context, enabled bool) error {
	if err := m.ensureAgentsDir(); err != nil {
		return err
	}

	if enabled {
		program, err := m.executable()
		if err != nil {
			return &Error{Op: "resolve", Path: "the application executable", Err: err}
		}
		if err := m.writeDescriptor(program); err != nil {
			return err
		}
		m.reload(ctx)
		m.logger.Infow("Запуск при входе включён", "program", program)
		return nil
	}

	m.run(ctx, "bootout", m.service())
	if err := os.Remove(m.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		m.logger.Debugw("Не удалось удалить plist агента", "path", m.Path(), "error", err)
	}
	m.logger.Infow("Запуск при входе выключен")
	return nil
}

// EnableByDefaultIfUnset один раз за всё время включает агент,
// если пользователь ещё ничего не выбирал. Возвращает true, если включил.
func (m *Manager) EnableByDefaultIfUnset(ctx context.Context) bool {
	if m.marker.LaunchAtLoginDefaultApplied() {
		return false
	}
	if err := m.marker.MarkLaunchAtLoginDefaultApplied(); err != nil {
		m.logger.Warnw("Не удалось сохранить признак включения по умолчанию", "error", err)
	}

	if _, err := os.Stat(m.Path()); err == nil {
		return false
	}

	if err := m.SetEnabled(ctx, true); err != nil {
		m.logger.Debugw("Включение по умолчанию не удалось", "error", err)
		return false
	}
	return true
}

// RepairIfNeeded чинит агент, если приложение переехало или plist испорчен.
// Возвращает true, если была починка или перезагрузка агента.
func (m *Manager) RepairIfNeeded(ctx context.Context) bool {
	data, err := os.ReadFile(m.Path())
	if errors.Is(err, os.ErrNotExist) {
		return false
	}

	current, exeErr := m.executable()
	if exeErr != nil {
		m.logger.Warnw("Не удалось определить путь к приложению", "error", exeErr)
		return false
	}

	var dict map[string]interface{}
	if err == nil {
		dict, err = decodeDict(data)
	}
	if err != nil {
		m.logger.Infow("plist агента повреждён, записываем заново", "error", err)
		if err := m.writeDescriptor(current); err != nil {
			m.logger.Debugw("Перезапись plist не удалась", "error", err)
		}
		m.reload(ctx)
		return true
	}

	if recorded, _ := recordedProgram(dict); recorded != current {
		m.logger.Infow("Путь к приложению изменился", "old", recorded, "new", current)
		dict["ProgramArguments"] = []string{current}
		delete(dict, "Program")

		if data, err := encodeXML(dict); err == nil {
			err = writeAtomic(m.Path(), data)
			if err != nil {
				m.logger.Debugw("Запись plist не удалась", "error", err)
			}
		} else if err := m.writeDescriptor(current); err != nil {
			m.logger.Debugw("Перезапись plist не удалась", "error", err)
		}
		m.reload(ctx)
		return true
	}

	if !m.IsEnabled(ctx) {
		m.logger.Infow("Агент не зарегистрирован, перезагружаем")
		m.reload(ctx)
		return true
	}
	return false
}

// OpenSettings открывает раздел «Объекты входа» в Системных настройках.
func (m *Manager) OpenSettings() error {
	return m.openURL(loginItemsURL)
}

func (m *Manager) ensureAgentsDir() error {
	if err := os.MkdirAll(m.agentsDir, 0o755); err != nil {
		return &Error{Op: "create", Path: m.agentsDir, Err: err}
	}
	return nil
}

func (m *Manager) writeDescriptor(program string) error {
	data, err := encodeXML(NewDescriptor(m.label, program))
	if err != nil {
		return &Error{Op: "encode", Path: m.Path(), Err: err}
	}
	if err := writeAtomic(m.Path(), data); err != nil {
		return &Error{Op: "write", Path: m.Path(), Err: err}
	}
	return nil
}

// reload перерегистрирует агент: bootout, bootstrap, enable.
// Ошибки launchctl не критичны и только логируются.
func (m *Manager) reload(ctx context.Context) {
	m.run(ctx, "bootout", m.service())
	m.run(ctx, "bootstrap", m.domain(), m.Path())
	m.run(ctx, "enable", m.service())
}

func (m *Manager) run(ctx context.Context, args ...string) {
	if _, err := m.runner.Run(ctx, launchctl, args...); err != nil {
		m.logger.Debugw("launchctl завершился с ошибкой", "args", args, "error", err)
	}
}
