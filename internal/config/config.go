// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Значения по умолчанию.
const (
	DefaultUILanguage     = "en"
	DefaultSpinsPerSecond = -1.0 // по часовой стрелке
	DefaultFrameRate      = 30.0
)

// configData структура для сериализации.
type configData struct {
	UILanguage     string  `json:"ui_language" mapstructure:"ui_language"`
	Notifications  bool    `json:"notifications" mapstructure:"notifications"`
	SpinsPerSecond float64 `json:"spins_per_second" mapstructure:"spins_per_second"`
	FrameRate      float64 `json:"frame_rate" mapstructure:"frame_rate"`
	GlyphFont      string  `json:"glyph_font,omitempty" mapstructure:"glyph_font"`
	DefaultApplied bool    `json:"launch_at_login_default_applied" mapstructure:"launch_at_login_default_applied"`
}

// Config хранит настройки приложения.
type Config struct {
	mu         sync.RWMutex
	data       configData
	configPath string
}

// Load загружает конфигурацию из стандартного каталога.
func Load() (*Config, error) {
	if err := EnsureDirs(); err != nil {
		return nil, err
	}
	return LoadFrom(ConfigFile())
}

// LoadFrom загружает конфигурацию из файла path: значения по умолчанию,
// затем файл, затем переменные окружения FNFLIP_*.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("ui_language", DefaultUILanguage)
	v.SetDefault("notifications", true)
	v.SetDefault("spins_per_second", DefaultSpinsPerSecond)
	v.SetDefault("frame_rate", DefaultFrameRate)
	v.SetDefault("glyph_font", "")
	v.SetDefault("launch_at_login_default_applied", false)

	v.SetConfigFile(path)
	v.SetConfigType("json")

	// Файла может не быть при первом запуске
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("FNFLIP")
	v.AutomaticEnv()

	c := &Config{configPath: path}
	if err := v.Unmarshal(&c.data); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if c.data.FrameRate <= 0 {
		c.data.FrameRate = DefaultFrameRate
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := c.save(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// save сохраняет конфигурацию в файл. Вызывается под блокировкой.
func (c *Config) save() error {
	if c.configPath == "" {
		return nil
	}

	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(c.configPath, data, 0644)
}

// Path возвращает путь к файлу конфигурации.
func (c *Config) Path() string {
	return c.configPath
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.UILanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.UILanguage = lang
	return c.save()
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Notifications
}

// SetNotifications включает/выключает уведомления.
func (c *Config) SetNotifications(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Notifications = enabled
	return c.save()
}

// SpinsPerSecond возвращает скорость вращения стрелок (отрицательная - по часовой).
func (c *Config) SpinsPerSecond() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.SpinsPerSecond
}

// FrameRate возвращает частоту кадров анимации.
func (c *Config) FrameRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.FrameRate
}

// GlyphFont возвращает путь к TTF/OTF шрифту для надписи "fn" (пусто - встроенный).
func (c *Config) GlyphFont() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.GlyphFont
}

// LaunchAtLoginDefaultApplied сообщает, применялось ли уже автовключение автозапуска.
func (c *Config) LaunchAtLoginDefaultApplied() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.DefaultApplied
}

// MarkLaunchAtLoginDefaultApplied запоминает, что автовключение уже применялось.
func (c *Config) MarkLaunchAtLoginDefaultApplied() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.DefaultApplied = true
	return c.save()
}
