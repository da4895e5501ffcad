package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

const dateLayout = "02.01.2006"

// ReminderFormatter renders reminders in the studio zone.
func ReminderFormatter(loc *time.Location) func(b *domain.Booking, lead time.Duration) string {
	return func(b *domain.Booking, _ time.Duration) string {
		return ReminderText(b, loc)
	}
}

func ReminderText(b *domain.Booking, loc *time.Location) string {
	start := b.StartTime.In(loc)
	return fmt.Sprintf("🔔 Напоминание: у вас запись в ArtChaos %s в %s (%s).",
		start.Format(dateLayout), start.Format(domain.ClockLayout), FormatDuration(b.Duration),
	)
}

func BookingCreatedText(b *domain.Booking, loc *time.Location) string {
	start := b.StartTime.In(loc)
	text := fmt.Sprintf("✅ Вы записаны в ArtChaos %s, %s–%s.",
		start.Format(dateLayout), start.Format(domain.ClockLayout),
		b.EndTime().In(loc).Format(domain.ClockLayout),
	)

	switch {
	case b.Override:
		text += "\nЗапись создана администратором, посещение не списано."
	case b.CreditConsuming:
		text += "\nСписано 1 посещение."
	default:
		text += "\nПосещение за этот день уже списано."
	}

	return text
}

func BookingCancelledText(c *domain.Cancellation, loc *time.Location) string {
	start := c.Booking.StartTime.In(loc)
	text := fmt.Sprintf("❌ Запись на %s в %s отменена.",
		start.Format(dateLayout), start.Format(domain.ClockLayout),
	)
	if c.Refunded {
		text += "\nПосещение возвращено на баланс."
	}
	return text
}

// FormatDuration renders d as "1 ч 30 мин".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%d ч", h))
	}
	if m > 0 || h == 0 {
		parts = append(parts, fmt.Sprintf("%d мин", m))
	}
	return strings.Join(parts, " ")
}
