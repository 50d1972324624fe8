package fnkey

import (
	"context"
	"errors"
	"strings"
)

// PreferenceKey - ключ глобального домена настроек:
// true - F1..F12 работают как стандартные функциональные клавиши.
const PreferenceKey = "com.apple.keyboard.fnState"

// ErrNotFound - значение отсутствует в хранилище.
var ErrNotFound = errors.New("fnkey: preference not found")

// Scope - вариант хоста, в который пишется настройка.
type Scope int

const (
	AnyHost Scope = iota
	CurrentHost
)

// Scopes - порядок записи при переключении.
var Scopes = []Scope{AnyHost, CurrentHost}

func (s Scope) String() string {
	switch s {
	case AnyHost:
		return "any-host"
	case CurrentHost:
		return "current-host"
	default:
		return "unknown"
	}
}

// Reader читает текущее значение настройки.
type Reader interface {
	Read(ctx context.Context) (bool, error)
}

// Writer записывает значение в указанный scope и синхронизирует его на диск.
type Writer interface {
	Write(ctx context.Context, scope Scope, value bool) error
}

// Store - основное хранилище настройки.
type Store interface {
	Reader
	Writer
}

// Nudger просит систему применить изменённые настройки без перезапуска cfprefsd.
type Nudger interface {
	Nudge(ctx context.Context) error
}

// ParseBool разбирает вывод утилиты defaults: "1", "true", "yes" - true, остальное - false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
