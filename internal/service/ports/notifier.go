package ports

import (
	"context"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

// BookingNotifier tells a user about changes an administrator made to their
// bookings.
type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking)
	NotifyBookingCancelled(ctx context.Context, c *domain.Cancellation)
}

type EventPublisher interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
	BookingCancelled(ctx context.Context, c *domain.Cancellation)
}
