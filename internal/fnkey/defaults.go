package fnkey

import (
	"context"
	"fmt"
	"strconv"

	"fnflip/internal/shell"
)

const (
	defaultsPath         = "/usr/bin/defaults"
	activateSettingsPath = "/System/Library/PrivateFrameworks/SystemAdministration.framework/Resources/activateSettings"
)

// DefaultsStore читает и пишет настройку через утилиту defaults(1).
// Используется как запасной Reader и как основной Store в сборках без cgo.
type DefaultsStore struct {
	Runner shell.Runner
}

// Read выполняет `defaults read -g com.apple.keyboard.fnState`.
func (d DefaultsStore) Read(ctx context.Context) (bool, error) {
	out, err := d.Runner.Run(ctx, defaultsPath, "read", "-g", PreferenceKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return ParseBool(string(out)), nil
}

// Write выполняет `defaults [-currentHost] write -g com.apple.keyboard.fnState -bool <v>`.
// defaults сам синхронизирует значение с cfprefsd.
func (d DefaultsStore) Write(ctx context.Context, scope Scope, value bool) error {
	args := []string{"write", "-g", PreferenceKey, "-bool", strconv.FormatBool(value)}
	if scope == CurrentHost {
		args = append([]string{"-currentHost"}, args...)
	}
	if _, err := d.Runner.Run(ctx, defaultsPath, args...); err != nil {
		return fmt.Errorf("defaults write (%s): %w", scope, err)
	}
	return nil
}

// ActivateSettings - Nudger через приватную утилиту activateSettings -u.
type ActivateSettings struct {
	Runner shell.Runner
}

// Nudge просит систему перечитать пользовательские настройки.
func (a ActivateSettings) Nudge(ctx context.Context) error {
	_, err := a.Runner.Run(ctx, activateSettingsPath, "-u")
	return err
}
