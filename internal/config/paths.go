package config

import (
	"os"
	"path/filepath"
)

const (
	AppName = "FnFlip"
	AppID   = "fnflip"
)

// ConfigDir возвращает каталог конфигурации.
// macOS: ~/Library/Application Support/FnFlip
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", AppID)
	}
	return filepath.Join(dir, AppName)
}

// LogDir возвращает каталог логов.
// macOS: ~/Library/Logs/FnFlip, на остальных системах ~/.local/state/fnflip/logs
func LogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppID, "logs")
	}
	if _, err := os.Stat(filepath.Join(home, "Library")); err == nil {
		return filepath.Join(home, "Library", "Logs", AppName)
	}
	return filepath.Join(home, ".local", "state", AppID, "logs")
}

// ConfigFile возвращает полный путь к файлу конфигурации.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// EnsureDirs создаёт каталоги конфигурации и логов.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), LogDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
