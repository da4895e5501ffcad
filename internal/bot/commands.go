package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wb-go/wbf/logger"
)

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	name := msg.From.FirstName
	if name == "" {
		name = msg.From.UserName
	}
	b.reply(msg.Chat.ID, welcomeText(name))
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	text := textHelp
	if b.users.IsAdmin(msg.From.ID) {
		text += textAdminHelp
	}
	b.reply(msg.Chat.ID, text)
}

func (b *Bot) handleBook(msg *tgbotapi.Message) {
	b.conv.Begin(msg.From.ID)
	b.replyWithKeyboard(msg.Chat.ID, textChooseDate, dateKeyboard(b.now(), b.loc, b.opts.DaysAhead))
}

func (b *Bot) handleAbort(msg *tgbotapi.Message) {
	if !b.conv.Abort(msg.From.ID) {
		b.reply(msg.Chat.ID, textNothingToAbort)
		return
	}
	b.reply(msg.Chat.ID, textBookingAborted)
}

func (b *Bot) handleMy(ctx context.Context, msg *tgbotapi.Message) {
	bookings, err := b.bookings.ListUpcoming(ctx, msg.From.ID)
	if err != nil {
		b.replyError(msg.Chat.ID, "list upcoming bookings", err)
		return
	}

	if len(bookings) == 0 {
		b.reply(msg.Chat.ID, textNoBookings)
		return
	}

	b.replyWithKeyboard(msg.Chat.ID, upcomingText(bookings, b.loc), cancelKeyboard(bookings, b.loc))
}

func (b *Bot) handleBalance(ctx context.Context, msg *tgbotapi.Message) {
	balance, err := b.users.Balance(ctx, msg.From.ID)
	if err != nil {
		b.replyError(msg.Chat.ID, "get balance", err)
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("💳 Посещений на балансе: %d", balance))
}

// handleGrant parses "/grant <user id> <delta>". The delta may be negative.
func (b *Bot) handleGrant(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		b.reply(msg.Chat.ID, textGrantUsage)
		return
	}

	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.reply(msg.Chat.ID, textGrantUsage)
		return
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil || delta == 0 {
		b.reply(msg.Chat.ID, textGrantUsage)
		return
	}

	balance, err := b.users.AdjustCredits(ctx, msg.From.ID, userID, delta)
	if err != nil {
		b.replyError(msg.Chat.ID, "adjust credits", err)
		return
	}

	b.reply(msg.Chat.ID, fmt.Sprintf("✅ Баланс пользователя %d: %d", userID, balance))
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	stats, err := b.bookings.Stats(ctx, msg.From.ID)
	if err != nil {
		b.replyError(msg.Chat.ID, "get stats", err)
		return
	}
	b.reply(msg.Chat.ID, statsText(stats))
}

func (b *Bot) replyError(chatID int64, op string, err error) {
	b.reply(chatID, b.userError(chatID, op, err))
}

func (b *Bot) userError(userID int64, op string, err error) string {
	text, expected := errorText(err, b.loc)
	if !expected {
		b.logger.Error(op+" failed",
			logger.Int64("user_id", userID),
			logger.String("error", err.Error()),
		)
	}
	return text
}
