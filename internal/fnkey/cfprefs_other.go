//go:build !darwin || !cgo

package fnkey

import "fnflip/internal/shell"

// NewPlatformStore возвращает основное хранилище для текущей платформы.
// Без CoreFoundation остаётся только утилита defaults.
func NewPlatformStore() Store {
	return DefaultsStore{Runner: shell.Exec{}}
}
