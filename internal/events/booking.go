package events

import (
	"context"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/wb-go/wbf/logger"
)

const (
	KeyBookingCreated   = "booking.created"
	KeyBookingCancelled = "booking.cancelled"
	KeyReminderSent     = "reminder.sent"
)

const publishTimeout = 5 * time.Second

type jsonPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingEvent struct {
	BookingID       string    `json:"booking_id"`
	UserID          int64     `json:"user_id"`
	Date            string    `json:"date"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	CreditConsuming bool      `json:"credit_consuming"`
	Override        bool      `json:"override,omitempty"`
	Refunded        bool      `json:"refunded,omitempty"`
	CreditMovedTo   string    `json:"credit_moved_to,omitempty"`
	LeadMinutes     int       `json:"lead_minutes,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BookingEvents turns booking lifecycle changes into messages. Publishing is
// best effort: failures are logged and never reach the caller. A nil
// publisher disables publishing.
type BookingEvents struct {
	pub    jsonPublisher
	logger logger.Logger
}

func NewBookingEvents(pub jsonPublisher, logger logger.Logger) *BookingEvents {
	return &BookingEvents{pub: pub, logger: logger}
}

func (e *BookingEvents) BookingCreated(ctx context.Context, b *domain.Booking) {
	e.publish(ctx, KeyBookingCreated, newBookingEvent(b))
}

func (e *BookingEvents) BookingCancelled(ctx context.Context, c *domain.Cancellation) {
	evt := newBookingEvent(c.Booking)
	evt.Refunded = c.Refunded
	evt.CreditMovedTo = c.CreditMovedTo
	e.publish(ctx, KeyBookingCancelled, evt)
}

func (e *BookingEvents) ReminderSent(ctx context.Context, b *domain.Booking, lead time.Duration) {
	evt := newBookingEvent(b)
	evt.LeadMinutes = int(lead / time.Minute)
	e.publish(ctx, KeyReminderSent, evt)
}

func (e *BookingEvents) publish(ctx context.Context, key string, evt BookingEvent) {
	if e.pub == nil {
		e.logger.Debug("event skipped (publisher disabled)",
			logger.String("key", key),
			logger.String("booking_id", evt.BookingID),
		)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := e.pub.PublishJSON(ctx, key, evt); err != nil {
		e.logger.Error("failed to publish event",
			logger.String("key", key),
			logger.String("booking_id", evt.BookingID),
			logger.String("error", err.Error()),
		)
	}
}

func newBookingEvent(b *domain.Booking) BookingEvent {
	return BookingEvent{
		BookingID:       b.ID,
		UserID:          b.UserID,
		Date:            b.Date.Format(domain.DateLayout),
		StartTime:       b.StartTime.UTC(),
		DurationMinutes: int(b.Duration / time.Minute),
		CreditConsuming: b.CreditConsuming,
		Override:        b.Override,
		OccurredAt:      time.Now().UTC(),
	}
}
