package notification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier pushes messages to a user's private chat. Telegram chat
// ids of private chats equal user ids.
type TelegramNotifier struct {
	bot    botSender
	loc    *time.Location
	logger logger.Logger
}

// NewTelegramNotifier with an empty token returns a notifier that only logs.
func NewTelegramNotifier(token string, timeout time.Duration, loc *time.Location, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, loc: loc, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, loc: loc, logger: logger}, nil
}

// Send delivers one message. It returns when ctx is done even if the
// Telegram call is still running.
func (n *TelegramNotifier) Send(ctx context.Context, userID int64, message string) error {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)",
			logger.Int64("user_id", userID),
			logger.String("text", message),
		)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(userID, message)

	errCh := make(chan error, 1)
	go func() {
		_, err := n.bot.Send(msg)
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("send telegram message: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("send telegram message: %w", err)
		}
		return nil
	}
}

func (n *TelegramNotifier) NotifyBookingCreated(ctx context.Context, b *domain.Booking) {
	n.notify(ctx, b.UserID, BookingCreatedText(b, n.loc))
}

func (n *TelegramNotifier) NotifyBookingCancelled(ctx context.Context, c *domain.Cancellation) {
	n.notify(ctx, c.Booking.UserID, BookingCancelledText(c, n.loc))
}

func (n *TelegramNotifier) notify(ctx context.Context, userID int64, text string) {
	if err := n.Send(ctx, userID, text); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("user_id", userID),
			logger.String("error", err.Error()),
		)
	}
}
