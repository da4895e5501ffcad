package bot

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/notification"
	"github.com/wb-go/wbf/logger"
)

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.From == nil {
		return
	}
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
			b.logger.Debug("answer callback", logger.String("error", err.Error()))
		}
	}()

	kind, value, ok := parseCallback(q.Data)
	if !ok {
		return
	}

	switch kind {
	case cbDate:
		b.onDate(q, value)
	case cbTime:
		b.onTime(q, value)
	case cbDuration:
		b.onDuration(ctx, q, value)
	case cbCancel:
		b.onCancel(ctx, q, value)
	}
}

func (b *Bot) onDate(q *tgbotapi.CallbackQuery, date string) {
	userID := q.From.ID

	if _, err := time.ParseInLocation(domain.DateLayout, date, b.loc); err != nil {
		return
	}
	if err := b.conv.ChooseDate(userID, date); err != nil {
		b.respond(q, textStaleDialog, nil)
		return
	}

	kb, ok := timeKeyboard(b.opts.TimeSlots, date, b.now(), b.loc)
	if !ok {
		b.conv.Abort(userID)
		b.respond(q, textNoSlotsLeft, nil)
		return
	}

	b.respond(q, dateChosenText(date, b.loc), &kb)
}

func (b *Bot) onTime(q *tgbotapi.CallbackQuery, clock string) {
	if _, err := time.Parse(domain.ClockLayout, clock); err != nil {
		return
	}
	if err := b.conv.ChooseTime(q.From.ID, clock); err != nil {
		b.respond(q, textStaleDialog, nil)
		return
	}

	kb := durationKeyboard(b.opts.Durations)
	b.respond(q, textChooseDuration, &kb)
}

func (b *Bot) onDuration(ctx context.Context, q *tgbotapi.CallbackQuery, value string) {
	userID := q.From.ID

	minutes, err := strconv.Atoi(value)
	if err != nil || minutes <= 0 {
		return
	}

	draft, err := b.conv.ChooseDuration(userID, time.Duration(minutes)*time.Minute)
	if err != nil {
		b.respond(q, textStaleDialog, nil)
		return
	}

	day, start, err := domain.ParseSlot(b.loc, draft.Date, draft.Clock)
	if err != nil {
		b.respond(q, b.userError(userID, "parse slot", err), nil)
		return
	}

	booking, err := b.bookings.Book(ctx, domain.BookInput{
		ActorID:        userID,
		UserID:         userID,
		Date:           day,
		StartTime:      start,
		Duration:       draft.Duration,
		IdempotencyKey: draft.Key,
	})
	if err != nil {
		b.respond(q, b.userError(userID, "book", err), nil)
		return
	}

	b.respond(q, notification.BookingCreatedText(booking, b.loc)+textBookedFarewell, nil)
}

func (b *Bot) onCancel(ctx context.Context, q *tgbotapi.CallbackQuery, bookingID string) {
	res, err := b.bookings.Cancel(ctx, q.From.ID, bookingID)
	if err != nil {
		b.respond(q, b.userError(q.From.ID, "cancel booking", err), nil)
		return
	}

	b.respond(q, notification.BookingCancelledText(res, b.loc), nil)
}
