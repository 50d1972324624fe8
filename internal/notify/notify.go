// Package notify предоставляет системные уведомления.
package notify

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"fnflip/internal/i18n"
)

// Notifier отправляет системные уведомления.
// Включение задаётся конфигурацией при старте.
type Notifier struct {
	logger  *zap.SugaredLogger
	send    func(title, message string) error
	enabled bool
}

// New создаёт новый Notifier.
func New(logger *zap.SugaredLogger, enabled bool) *Notifier {
	return &Notifier{
		logger:  logger,
		enabled: enabled,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Enabled сообщает, включены ли уведомления.
func (n *Notifier) Enabled() bool {
	return n.enabled
}

// Prepare вызывается один раз при старте. Разрешение на уведомления
// macOS запрашивает сама при первой отправке.
func (n *Notifier) Prepare() {
	n.logger.Debugw("Уведомления готовы", "enabled", n.Enabled())
}

// Toggled сообщает о новом режиме функциональных клавиш.
func (n *Notifier) Toggled(standard bool) {
	body := i18n.T("notify_disabled")
	if standard {
		body = i18n.T("notify_enabled")
	}
	n.notify(i18n.T("notify_toggled"), body)
}

func (n *Notifier) notify(title, message string) {
	if !n.Enabled() {
		return
	}
	// Ошибки уведомлений не критичны
	if err := n.send(title, message); err != nil {
		n.logger.Debugw("Уведомление не отправлено", "error", err)
	}
}
