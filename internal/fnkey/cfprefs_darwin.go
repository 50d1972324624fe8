//go:build darwin && cgo

package fnkey

/*
#cgo LDFLAGS: -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>

static CFStringRef fnStateKey(void) {
    return CFSTR("com.apple.keyboard.fnState");
}

// 1 - значение найдено и записано в *out, 0 - значения нет или тип неизвестен.
static int fnReadState(int *out) {
    CFPropertyListRef value = CFPreferencesCopyValue(
        fnStateKey(),
        kCFPreferencesAnyApplication,
        kCFPreferencesCurrentUser,
        kCFPreferencesAnyHost);
    if (value == NULL) {
        return 0;
    }

    int found = 0;
    if (CFGetTypeID(value) == CFBooleanGetTypeID()) {
        *out = CFBooleanGetValue((CFBooleanRef)value) ? 1 : 0;
        found = 1;
    } else if (CFGetTypeID(value) == CFNumberGetTypeID()) {
        int n = 0;
        if (CFNumberGetValue((CFNumberRef)value, kCFNumberIntType, &n)) {
            *out = n != 0 ? 1 : 0;
            found = 1;
        }
    }
    CFRelease(value);
    return found;
}

// 1 - синхронизация прошла успешно.
static int fnWriteState(int value, int currentHost) {
    CFStringRef host = currentHost ? kCFPreferencesCurrentHost : kCFPreferencesAnyHost;
    CFPreferencesSetValue(
        fnStateKey(),
        value ? kCFBooleanTrue : kCFBooleanFalse,
        kCFPreferencesAnyApplication,
        kCFPreferencesCurrentUser,
        host);
    return CFPreferencesSynchronize(
        kCFPreferencesAnyApplication,
        kCFPreferencesCurrentUser,
        host) ? 1 : 0;
}
*/
import "C"

import (
	"context"
	"fmt"
)

// CFPrefsStore работает с настройкой напрямую через CFPreferences,
// без запуска процессов.
type CFPrefsStore struct{}

// NewPlatformStore возвращает основное хранилище для текущей платформы.
func NewPlatformStore() Store {
	return CFPrefsStore{}
}

// Read читает значение из домена текущего пользователя (any host).
func (CFPrefsStore) Read(ctx context.Context) (bool, error) {
	var out C.int
	if C.fnReadState(&out) == 0 {
		return false, ErrNotFound
	}
	return out != 0, nil
}

// Write записывает значение и синхронизирует домен.
func (CFPrefsStore) Write(ctx context.Context, scope Scope, value bool) error {
	v := C.int(0)
	if value {
		v = 1
	}
	host := C.int(0)
	if scope == CurrentHost {
		host = 1
	}
	if C.fnWriteState(v, host) == 0 {
		return fmt.Errorf("CFPreferencesSynchronize (%s) failed", scope)
	}
	return nil
}
