package notificator

import (
	"context"
	"runtime/debug"

	"github.com/argab/lottery/internal/models"
	"github.com/argab/lottery/pkg/logger"
)

var _ models.NotificationService = (*Notificator)(nil)

// Notificator delivers applicant messages by SMS and mirrors them to the
// admin Telegram chat when one is configured.
type Notificator struct {
	logger *logger.Logger

	SMSNotificator      *SMSNotificator
	TelegramNotificator *TelegramNotificator
}

func NewNotificator(logger *logger.Logger, smsNotif *SMSNotificator, telNotif *TelegramNotificator) *Notificator {
	return &Notificator{logger: logger, SMSNotificator: smsNotif, TelegramNotificator: telNotif}
}

// safeCall runs a function with panic recovery (synchronous, no goroutine spawning)
func (n *Notificator) safeCall(fn func(), context string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Errorw("Function panicked",
				"context", context,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Send delivers message to phone. The result reflects the SMS delivery only;
// the Telegram mirror is best effort.
func (n *Notificator) Send(ctx context.Context, phone, message string) bool {
	delivered := false
	if n.SMSNotificator != nil {
		n.safeCall(func() { delivered = n.SMSNotificator.Send(ctx, phone, message) }, "smsNotification")
	}
	if n.TelegramNotificator != nil {
		text := phone + ": " + message
		n.safeCall(func() { n.TelegramNotificator.NotifyAdmin(ctx, text) }, "telegramNotification")
	}
	return delivered
}
