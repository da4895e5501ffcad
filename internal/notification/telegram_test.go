package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

var studio = time.FixedZone("MSK", 3*60*60)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type fakeBot struct {
	sent  []tgbotapi.MessageConfig
	err   error
	block chan struct{}
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.block != nil {
		<-f.block
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func testBooking() *domain.Booking {
	_, start, _ := domain.ParseSlot(studio, "2030-03-10", "18:30")
	return &domain.Booking{
		ID:              "b1",
		UserID:          42,
		StartTime:       start,
		Duration:        90 * time.Minute,
		CreditConsuming: true,
	}
}

func TestTelegramNotifier_Send(t *testing.T) {
	bot := &fakeBot{}
	n := &TelegramNotifier{bot: bot, loc: studio, logger: newTestLogger(t)}

	err := n.Send(context.Background(), 42, "hello")

	require.NoError(t, err)
	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(42), bot.sent[0].ChatID)
	assert.Equal(t, "hello", bot.sent[0].Text)
}

func TestTelegramNotifier_Send_Error(t *testing.T) {
	bot := &fakeBot{err: errors.New("Forbidden: bot was blocked by the user")}
	n := &TelegramNotifier{bot: bot, loc: studio, logger: newTestLogger(t)}

	err := n.Send(context.Background(), 42, "hello")

	assert.ErrorContains(t, err, "blocked")
}

func TestTelegramNotifier_Send_Timeout(t *testing.T) {
	bot := &fakeBot{block: make(chan struct{})}
	defer close(bot.block)
	n := &TelegramNotifier{bot: bot, loc: studio, logger: newTestLogger(t)}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := n.Send(ctx, 42, "hello")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTelegramNotifier_Disabled(t *testing.T) {
	n, err := NewTelegramNotifier("", time.Second, studio, newTestLogger(t))
	require.NoError(t, err)

	assert.NoError(t, n.Send(context.Background(), 42, "hello"))
}

func TestReminderText(t *testing.T) {
	assert.Equal(t,
		"🔔 Напоминание: у вас запись в ArtChaos 10.03.2030 в 18:30 (1 ч 30 мин).",
		ReminderText(testBooking(), studio),
	)
}

func TestBookingTexts(t *testing.T) {
	b := testBooking()
	assert.Contains(t, BookingCreatedText(b, studio), "18:30–20:00")
	assert.Contains(t, BookingCreatedText(b, studio), "Списано 1 посещение")

	b.Override = true
	assert.Contains(t, BookingCreatedText(b, studio), "не списано")

	c := &domain.Cancellation{Booking: b, Refunded: true}
	assert.Contains(t, BookingCancelledText(c, studio), "возвращено")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Minute, "30 мин"},
		{time.Hour, "1 ч"},
		{150 * time.Minute, "2 ч 30 мин"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in))
	}
}
