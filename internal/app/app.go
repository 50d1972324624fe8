// Package app содержит основную логику приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"fnflip/internal/hotkey"
	"fnflip/internal/i18n"
	"fnflip/internal/iconkit"
	"fnflip/internal/instance"
	"fnflip/internal/menu"
	"fnflip/internal/tray"
)

// Toggler читает и переключает режим функциональных клавиш асинхронно.
type Toggler interface {
	ReadAsync(completion func(bool))
	ToggleAsync(completion func(bool))
	Close()
}

// LoginItems управляет запуском при входе.
type LoginItems interface {
	IsEnabled(ctx context.Context) bool
	SetEnabled(ctx context.Context, enabled bool) error
	EnableByDefaultIfUnset(ctx context.Context) bool
	RepairIfNeeded(ctx context.Context) bool
	OpenSettings() error
}

// Notifier сообщает пользователю о переключении.
type Notifier interface {
	Prepare()
	Toggled(standard bool)
}

// StatusItem - значок в строке меню.
type StatusItem interface {
	iconkit.Target
	SetTooltip(tooltip string)
	SetMenu(m *menu.Menu)
	Run(onReady func())
	Quit()
}

// Hotkeys регистрирует глобальное сочетание.
type Hotkeys interface {
	Register(action func()) error
	Unregister() error
	Shortcut() hotkey.Shortcut
}

// Dialogs показывает модальные окна.
type Dialogs interface {
	// LoginItemError возвращает true, если пользователь попросил открыть настройки.
	LoginItemError(err error) bool
	About(shortcut string)
}

// InstanceGuard передаёт управление уже запущенной копии.
type InstanceGuard interface {
	HandOff(ctx context.Context) error
}

// Deps - зависимости контроллера.
type Deps struct {
	Logger        *zap.SugaredLogger
	Renderer      *iconkit.Renderer
	NewToggler    func(deliver func(func())) Toggler
	NewStatusItem func(callbacks tray.Callbacks) StatusItem
	Login         LoginItems
	Notifier      Notifier
	Hotkeys       Hotkeys
	Dialogs       Dialogs
	// Instance - nil, если вторую копию уже проверил вызывающий.
	Instance      InstanceGuard
}

// App представляет главное приложение.
type App struct {
	logger   *zap.SugaredLogger
	loop     *uiLoop
	state    *stateCell
	animator *iconkit.Animator
	toggler  Toggler
	status   StatusItem
	login    LoginItems
	notifier Notifier
	hotkeys  Hotkeys
	dialogs  Dialogs
	instance InstanceGuard

	// Поля ниже меняются только в UI-цикле
	working       bool // защита от одновременных переключений
	launchAtLogin bool // последнее известное состояние агента
	menu          *menu.Menu

	unsubscribe func()
	closeOnce   sync.Once
}

// New создаёт новое приложение.
func New(d Deps) *App {
	a := &App{
		logger:   d.Logger,
		loop:     newUILoop(),
		state:    newStateCell(),
		animator: iconkit.NewAnimator(d.Renderer, d.Logger),
		login:    d.Login,
		notifier: d.Notifier,
		hotkeys:  d.Hotkeys,
		dialogs:  d.Dialogs,
		instance: d.Instance,
	}
	a.toggler = d.NewToggler(a.loop.Post)
	a.status = d.NewStatusItem(tray.Callbacks{
		OnClick:    a.Toggle,
		OnMenuOpen: a.checkLaunchAtLogin,
		OnItem: func(tag menu.Tag, checked bool) {
			a.loop.Post(func() { a.onMenuItem(tag, checked) })
		},
	})
	a.unsubscribe = a.state.Subscribe(func(EnabledState) { a.refresh() })
	return a
}

// Run запускает приложение. Блокирует до выхода из трея.
// Если уже запущена другая копия, возвращает instance.ErrAlreadyRunning,
// ничего не меняя. При nil Deps.Instance проверку выполнил вызывающий.
func (a *App) Run(ctx context.Context) error {
	if a.instance != nil {
		if err := a.instance.HandOff(ctx); errors.Is(err, instance.ErrAlreadyRunning) {
			return err
		}
	}

	if a.login.RepairIfNeeded(ctx) {
		a.logger.Infow("Агент запуска при входе починен")
	}
	if a.login.EnableByDefaultIfUnset(ctx) {
		a.logger.Infow("Запуск при входе включён по умолчанию")
	}

	enabled := a.login.IsEnabled(ctx)
	a.loop.Post(func() { a.launchAtLogin = enabled })

	// Колбэки трея приходят в главном потоке, а сеттеры трея ждут его же:
	// главный поток никогда не ждёт UI-цикл.
	a.status.Run(func() {
		a.loop.Post(a.ready)
	})
	return nil
}

// ready настраивает значок после инициализации трея. Выполняется в UI-цикле.
func (a *App) ready() {
	a.refreshIcon()
	a.status.SetTooltip(a.tooltip())
	a.menu = menu.Build(a.menuState())
	a.status.SetMenu(a.menu)

	a.notifier.Prepare()

	if err := a.hotkeys.Register(a.Toggle); err != nil {
		a.logger.Warnw("Ошибка регистрации горячей клавиши", "error", err)
	}

	a.toggler.ReadAsync(func(standard bool) {
		a.logger.Infow("Прочитан режим функциональных клавиш", "standard", standard)
		a.state.Set(StateOf(standard))
	})
}

// Toggle переключает режим. Пока предыдущее переключение не завершилось,
// ничего не делает.
func (a *App) Toggle() {
	a.loop.Post(a.toggle)
}

func (a *App) toggle() {
	if a.working {
		a.logger.Debugw("Переключение уже выполняется")
		return
	}
	a.working = true
	a.refreshIcon()

	a.toggler.ToggleAsync(func(standard bool) {
		a.working = false
		a.state.Set(StateOf(standard))
		a.notifier.Toggled(standard)
	})
}

// State возвращает известный режим.
func (a *App) State() EnabledState {
	return a.state.Get()
}

// Quit закрывает трей; Run вернёт управление.
func (a *App) Quit() {
	a.status.Quit()
}

func (a *App) onMenuItem(tag menu.Tag, checked bool) {
	switch tag {
	case menu.TagToggle:
		a.toggle()
	case menu.TagLaunchAtLogin:
		a.setLaunchAtLogin(!checked)
	case menu.TagAbout:
		a.dialogs.About(a.hotkeys.Shortcut().Display())
	case menu.TagQuit:
		a.Quit()
	}
}

func (a *App) setLaunchAtLogin(enabled bool) {
	ctx := context.Background()
	if err := a.login.SetEnabled(ctx, enabled); err != nil {
		a.logger.Warnw("Не удалось изменить запуск при входе", "enabled", enabled, "error", err)
		if a.dialogs.LoginItemError(err) {
			if err := a.login.OpenSettings(); err != nil {
				a.logger.Debugw("Не удалось открыть настройки", "error", err)
			}
		}
		a.refreshMenu()
		a.checkLaunchAtLogin()
		return
	}
	a.launchAtLogin = enabled
	a.refreshMenu()
}

// checkLaunchAtLogin перечитывает состояние агента вне UI-цикла и обновляет
// галочку, если оно изменилось. Не блокирует вызывающего.
func (a *App) checkLaunchAtLogin() {
	go func() {
		enabled := a.login.IsEnabled(context.Background())
		a.loop.Post(func() {
			if a.launchAtLogin == enabled {
				return
			}
			a.launchAtLogin = enabled
			a.refreshMenu()
		})
	}()
}

// refresh обновляет иконку, подсказку и меню. Выполняется в UI-цикле.
func (a *App) refresh() {
	a.refreshIcon()
	a.status.SetTooltip(a.tooltip())
	a.refreshMenu()
}

func (a *App) refreshIcon() {
	a.animator.Apply(a.status, IconState(a.state.Get(), a.working))
}

func (a *App) refreshMenu() {
	if a.menu == nil {
		return
	}
	menu.Refresh(a.menu, a.menuState())
	a.status.SetMenu(a.menu)
}

func (a *App) menuState() menu.State {
	return menu.State{
		Enabled:       a.state.Get() == Enabled,
		LaunchAtLogin: a.launchAtLogin,
		Shortcut:      a.hotkeys.Shortcut(),
	}
}

func (a *App) tooltip() string {
	shortcut := a.hotkeys.Shortcut().Display()
	switch a.state.Get() {
	case Enabled:
		return fmt.Sprintf(i18n.T("tooltip_standard"), shortcut)
	case Disabled:
		return fmt.Sprintf(i18n.T("tooltip_hardware"), shortcut)
	default:
		return fmt.Sprintf(i18n.T("tooltip_reading"), shortcut)
	}
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		if err := a.hotkeys.Unregister(); err != nil {
			a.logger.Warnw("Ошибка снятия горячей клавиши", "error", err)
		}
		a.unsubscribe()
		a.animator.Stop()
		a.animator.Detach()
		a.toggler.Close()
		a.loop.Close()
	})
}
