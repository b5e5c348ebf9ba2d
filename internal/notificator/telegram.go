package notificator

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgModels "github.com/go-telegram/bot/models"

	"github.com/argab/lottery/pkg/logger"
)

// messageSender is the part of *bot.Bot used to deliver messages.
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*tgModels.Message, error)
}

// TelegramNotificator mirrors applicant notifications to the admin chat.
type TelegramNotificator struct {
	logger *logger.Logger
	bot    *bot.Bot
	sender messageSender

	adminChatID int64
}

// NewTelegramNotificator connects the bot. Updates are not polled until Start is called.
func NewTelegramNotificator(logger *logger.Logger, token string, adminChatID int64) (*TelegramNotificator, error) {
	provider := &TelegramNotificator{
		logger:      logger,
		adminChatID: adminChatID,
	}
	opts := []bot.Option{
		bot.WithDefaultHandler(provider.handler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	provider.bot = b
	provider.sender = b

	return provider, nil
}

// Start polls for updates until ctx is cancelled.
func (t *TelegramNotificator) Start(ctx context.Context) {
	go t.bot.Start(ctx)
}

// NotifyAdmin sends message to the admin chat, if one is configured.
func (t *TelegramNotificator) NotifyAdmin(ctx context.Context, message string) {
	if t.adminChatID == 0 {
		t.logger.Debug("Telegram admin chat is not configured, skipping")
		return
	}
	if err := t.SendNotification(ctx, t.adminChatID, message); err != nil {
		t.logger.Errorw("Failed to send telegram notification", "chat_id", t.adminChatID, "error", err)
	}
}

func (t *TelegramNotificator) SendNotification(ctx context.Context, chatID int64, message string) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   message,
	}
	_, err := t.sender.SendMessage(ctx, params)
	return err
}

// handler answers /start with the chat id to configure as TELEGRAM_ADMIN_CHAT_ID.
func (t *TelegramNotificator) handler(ctx context.Context, _ *bot.Bot, update *tgModels.Update) {
	if update == nil || update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	user := update.Message.From
	if user == nil {
		t.logger.Debugw("Telegram update without sender", "chat_id", chatID)
		return
	}
	t.logger.Debugw("Telegram update", "username", user.Username, "text", update.Message.Text)

	if update.Message.Text != "/start" {
		return
	}
	reply := fmt.Sprintf("Chat ID: %d. Set TELEGRAM_ADMIN_CHAT_ID to this value to receive notifications here.", chatID)
	if chatID == t.adminChatID {
		reply = "This chat receives lottery notifications."
	}
	if err := t.SendNotification(ctx, chatID, reply); err != nil {
		t.logger.Errorw("Failed to answer /start", "chat_id", chatID, "error", err)
		return
	}
	t.logger.Infow("Answered /start", "username", user.Username, "chat_id", chatID)
}
