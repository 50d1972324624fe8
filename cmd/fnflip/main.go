// FnFlip - значок в строке меню macOS, переключающий режим функциональных клавиш.
//
// Клик по значку или ⌘⌥F переключает F1, F2 между стандартными клавишами
// и аппаратными функциями (яркость, громкость).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"fnflip/internal/app"
	"fnflip/internal/config"
	"fnflip/internal/dialog"
	"fnflip/internal/fnkey"
	"fnflip/internal/hotkey"
	"fnflip/internal/i18n"
	"fnflip/internal/iconkit"
	"fnflip/internal/instance"
	"fnflip/internal/login"
	"fnflip/internal/notify"
	"fnflip/internal/tray"
	"fnflip/pkg/log"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

var (
	debug         = flag.Bool("debug", false, "подробный лог")
	showVersion   = flag.Bool("version", false, "показать версию и выйти")
	language      = flag.String("lang", "", "сохранить язык интерфейса (en, ru)")
	notifications = flag.Bool("notifications", true, "сохранить: показывать уведомления о переключении")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println("FnFlip", Version)
		return
	}

	// Запускаем в главном потоке (требование для macOS)
	hotkey.RunOnMainThread(run)
}

func run() {
	logger := log.New(*debug, config.LogDir())
	defer func() { _ = logger.Sync() }()
	logger.Infow("FnFlip запускается", "version", Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	finder, err := instance.NewFinder(logger)
	if err != nil {
		logger.Errorw("Ошибка инициализации", "error", err)
		os.Exit(1)
	}
	cfg, err := prepare(ctx, logger, finder, config.Load)
	if errors.Is(err, instance.ErrAlreadyRunning) {
		logger.Infow("FnFlip уже запущен, управление передано ему")
		return
	}
	if err != nil {
		logger.Errorw("Ошибка загрузки конфигурации", "error", err)
		os.Exit(1)
	}
	i18n.SetLanguage(i18n.Language(cfg.UILanguage()))
	logger.Debugw("Язык интерфейса", "lang", i18n.LanguageName(i18n.GetLanguage()))

	application, err := build(logger, cfg)
	if err != nil {
		logger.Errorw("Ошибка инициализации", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	go func() {
		<-ctx.Done()
		application.Quit()
	}()

	if err := application.Run(ctx); err != nil {
		logger.Warnw("Ошибка запуска", "error", err)
	}
	logger.Infow("FnFlip завершает работу")
}

// prepare передаёт управление уже запущенной копии и только потом
// загружает конфигурацию и сохраняет в неё флаги.
func prepare(ctx context.Context, logger *zap.SugaredLogger, guard app.InstanceGuard, load func() (*config.Config, error)) (*config.Config, error) {
	if err := guard.HandOff(ctx); errors.Is(err, instance.ErrAlreadyRunning) {
		return nil, err
	}

	cfg, err := load()
	if err != nil {
		return nil, err
	}
	logger.Debugw("Конфигурация загружена", "path", cfg.Path())

	if err := applyFlags(cfg); err != nil {
		logger.Warnw("Не удалось сохранить настройки", "error", err)
	}
	return cfg, nil
}

// applyFlags сохраняет в конфигурацию явно заданные флаги.
func applyFlags(cfg *config.Config) error {
	if flag.CommandLine.Changed("lang") {
		lang := i18n.Language(*language)
		if !supported(lang) {
			return fmt.Errorf("unknown language %q", *language)
		}
		if err := cfg.SetUILanguage(string(lang)); err != nil {
			return err
		}
	}
	if flag.CommandLine.Changed("notifications") {
		if err := cfg.SetNotifications(*notifications); err != nil {
			return err
		}
	}
	return nil
}

func supported(lang i18n.Language) bool {
	for _, l := range i18n.AvailableLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}

func build(logger *zap.SugaredLogger, cfg *config.Config) (*app.App, error) {
	style := iconkit.DefaultStyle()
	style.SpinsPerSecond = cfg.SpinsPerSecond()
	style.FrameRate = cfg.FrameRate()
	if path := cfg.GlyphFont(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warnw("Не удалось прочитать шрифт, используется встроенный", "path", path, "error", err)
		} else {
			style.GlyphFont = data
		}
	}

	loginItems, err := login.New(logger, cfg)
	if err != nil {
		return nil, err
	}

	return app.New(app.Deps{
		Logger:   logger,
		Renderer: iconkit.NewRenderer(style),
		NewToggler: func(deliver func(func())) app.Toggler {
			return fnkey.NewDefault(logger, deliver)
		},
		NewStatusItem: func(callbacks tray.Callbacks) app.StatusItem {
			return tray.New(callbacks)
		},
		Login:    loginItems,
		Notifier: notify.New(logger, cfg.NotificationsEnabled()),
		Hotkeys:  hotkey.NewRegistrar(logger, hotkey.Default),
		Dialogs:  dialog.Dialogs{Version: Version},
	}), nil
}
