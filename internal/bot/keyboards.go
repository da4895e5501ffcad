package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/notification"
)

const (
	cbDate     = "date"
	cbTime     = "time"
	cbDuration = "dur"
	cbCancel   = "cancel"
)

var weekdays = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

func callbackData(kind, value string) string {
	return kind + ":" + value
}

func parseCallback(data string) (kind, value string, ok bool) {
	return strings.Cut(data, ":")
}

// dateKeyboard offers the next days starting today, one per row.
func dateKeyboard(now time.Time, loc *time.Location, days int) tgbotapi.InlineKeyboardMarkup {
	today := domain.DayStart(now, loc)

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i)
		label := fmt.Sprintf("%s (%s)", day.Format("02.01"), weekdays[day.Weekday()])
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbDate, day.Format(domain.DateLayout))),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// timeKeyboard lists the start times, two per row. Slots already in the past
// for the chosen day are left out.
func timeKeyboard(slots []string, date string, now time.Time, loc *time.Location) (tgbotapi.InlineKeyboardMarkup, bool) {
	var buttons []tgbotapi.InlineKeyboardButton
	for _, slot := range slots {
		_, start, err := domain.ParseSlot(loc, date, slot)
		if err != nil || !start.After(now) {
			continue
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(slot, callbackData(cbTime, slot)))
	}

	return pairs(buttons), len(buttons) > 0
}

func durationKeyboard(durations []time.Duration) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(durations))
	for _, d := range durations {
		minutes := strconv.Itoa(int(d / time.Minute))
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			notification.FormatDuration(d), callbackData(cbDuration, minutes),
		))
	}
	return pairs(buttons)
}

func cancelKeyboard(bookings []*domain.Booking, loc *time.Location) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(bookings))
	for _, b := range bookings {
		start := b.StartTime.In(loc)
		label := fmt.Sprintf("❌ %s %s", start.Format("02.01"), start.Format(domain.ClockLayout))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbCancel, b.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func pairs(buttons []tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(buttons); i += 2 {
		end := i + 2
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons[i:end]...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
