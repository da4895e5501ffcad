package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type published struct {
	key string
	evt BookingEvent
}

type fakePublisher struct {
	got []published
	err error
}

func (f *fakePublisher) PublishJSON(ctx context.Context, key string, v any) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.got = append(f.got, published{key: key, evt: v.(BookingEvent)})
	return f.err
}

func testBooking() *domain.Booking {
	loc := time.FixedZone("MSK", 3*60*60)
	day, start, _ := domain.ParseSlot(loc, "2030-03-10", "10:00")
	return &domain.Booking{
		ID:              "b1",
		UserID:          42,
		Date:            day,
		StartTime:       start,
		Duration:        2 * time.Hour,
		CreditConsuming: true,
	}
}

func TestBookingEvents(t *testing.T) {
	pub := &fakePublisher{}
	e := NewBookingEvents(pub, newTestLogger(t))
	b := testBooking()
	ctx := context.Background()

	e.BookingCreated(ctx, b)
	e.BookingCancelled(ctx, &domain.Cancellation{Booking: b, Refunded: true})
	e.ReminderSent(ctx, b, time.Hour)

	require.Len(t, pub.got, 3)

	assert.Equal(t, KeyBookingCreated, pub.got[0].key)
	assert.Equal(t, "2030-03-10", pub.got[0].evt.Date)
	assert.Equal(t, 120, pub.got[0].evt.DurationMinutes)
	assert.True(t, pub.got[0].evt.CreditConsuming)

	assert.Equal(t, KeyBookingCancelled, pub.got[1].key)
	assert.True(t, pub.got[1].evt.Refunded)

	assert.Equal(t, KeyReminderSent, pub.got[2].key)
	assert.Equal(t, 60, pub.got[2].evt.LeadMinutes)
}

func TestBookingEvents_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	e := NewBookingEvents(pub, newTestLogger(t))

	assert.NotPanics(t, func() {
		e.BookingCreated(context.Background(), testBooking())
	})
	assert.Len(t, pub.got, 1)
}

func TestBookingEvents_Disabled(t *testing.T) {
	e := NewBookingEvents(nil, newTestLogger(t))

	assert.NotPanics(t, func() {
		e.BookingCreated(context.Background(), testBooking())
	})
}
