// Package dialog предоставляет модальные окна: ошибки запуска при входе и «О программе».
package dialog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/pkg/browser"

	"fnflip/embedded"
	"fnflip/internal/i18n"
)

// LicenseURL - страница с текстом лицензии.
const LicenseURL = "https://github.com/eotles/fnFlip/blob/main/LICENSE"

// Dialogs показывает окна через zenity.
type Dialogs struct {
	Version string
}

// LoginItemError показывает ошибку обновления запуска при входе.
// Возвращает true, если пользователь выбрал «Open Login Items».
func (d Dialogs) LoginItemError(err error) bool {
	res := zenity.Warning(err.Error(),
		zenity.Title(i18n.T("alert_login_title")),
		zenity.OKLabel("OK"),
		zenity.ExtraButton(i18n.T("alert_login_open")),
	)
	return errors.Is(res, zenity.ErrExtraButton)
}

// About показывает сведения о программе. Кнопка «License» открывает лицензию.
func (d Dialogs) About(shortcut string) {
	res := zenity.Info(Credits(d.Version, shortcut),
		zenity.Title(i18n.T("about_title")),
		zenity.InfoIcon,
		zenity.OKLabel("OK"),
		zenity.ExtraButton(i18n.T("about_license")),
	)
	if errors.Is(res, zenity.ErrExtraButton) {
		_ = browser.OpenURL(LicenseURL)
	}
}

// Credits собирает текст окна «О программе».
func Credits(version, shortcut string) string {
	text := strings.ReplaceAll(strings.TrimSpace(embedded.Credits), "{shortcut}", shortcut)
	if version == "" {
		return text
	}
	return fmt.Sprintf(i18n.T("about_version"), version) + "\n\n" + text
}
