// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// Tooltip (%s - shortcut)
		"tooltip_standard": "FnFlip: Standard F1, F2, etc. (click to switch) • Shortcut: %s",
		"tooltip_hardware": "FnFlip: Hardware Keys (click to switch) • Shortcut: %s",
		"tooltip_reading":  "FnFlip: reading current state… • Shortcut: %s",

		// Menu
		"menu_header_standard": "Current: Standard F1, F2, etc.",
		"menu_header_hardware": "Current: Hardware Keys (brightness and volume)",
		"menu_switch_hardware": "Switch to Hardware Keys",
		"menu_switch_standard": "Switch to Standard F1, F2, etc.",
		"menu_switch_hint":     "Toggle function key mode",
		"menu_launch_at_login": "Launch at Login",
		"menu_launch_hint":     "Start FnFlip when you log in",
		"menu_about":           "About FnFlip…",
		"menu_about_hint":      "Version and license",
		"menu_quit":            "Quit",
		"menu_quit_hint":       "Close FnFlip",

		// Notifications
		"notify_toggled":  "Function Keys toggled",
		"notify_enabled":  "Enabled: F1, F2 act as standard function keys",
		"notify_disabled": "Disabled: F1, F2 control hardware features",

		// Dialogs
		"alert_login_title": "Could not update Launch at Login",
		"alert_login_open":  "Open Login Items",
		"about_title":       "About FnFlip",
		"about_license":     "License",
		"about_version":     "Version %s",
	},

	RU: {
		// Tooltip (%s - shortcut)
		"tooltip_standard": "FnFlip: стандартные F1, F2 и т.д. (нажмите, чтобы переключить) • Сочетание: %s",
		"tooltip_hardware": "FnFlip: аппаратные клавиши (нажмите, чтобы переключить) • Сочетание: %s",
		"tooltip_reading":  "FnFlip: чтение текущего состояния… • Сочетание: %s",

		// Menu
		"menu_header_standard": "Сейчас: стандартные F1, F2 и т.д.",
		"menu_header_hardware": "Сейчас: аппаратные клавиши (яркость и громкость)",
		"menu_switch_hardware": "Переключить на аппаратные клавиши",
		"menu_switch_standard": "Переключить на стандартные F1, F2 и т.д.",
		"menu_switch_hint":     "Переключить режим функциональных клавиш",
		"menu_launch_at_login": "Запускать при входе",
		"menu_launch_hint":     "Запускать FnFlip при входе в систему",
		"menu_about":           "О программе FnFlip…",
		"menu_about_hint":      "Версия и лицензия",
		"menu_quit":            "Выход",
		"menu_quit_hint":       "Закрыть FnFlip",

		// Notifications
		"notify_toggled":  "Режим функциональных клавиш изменён",
		"notify_enabled":  "Включено: F1, F2 работают как стандартные функциональные клавиши",
		"notify_disabled": "Выключено: F1, F2 управляют функциями устройства",

		// Dialogs
		"alert_login_title": "Не удалось изменить автозапуск",
		"alert_login_open":  "Открыть объекты входа",
		"about_title":       "О программе FnFlip",
		"about_license":     "Лицензия",
		"about_version":     "Версия %s",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to English, then to the key itself
	if s, ok := translations[EN][key]; ok {
		return s
	}
	return key
}

// SetLanguage sets the current UI language. Unknown languages are ignored.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; ok {
		current = lang
	}
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
