package ports

import (
	"context"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

type BookingRepo interface {
	InsertBooking(ctx context.Context, b *domain.Booking) error
	CancelBooking(ctx context.Context, id string) (*domain.Cancellation, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByIdempotencyKey(ctx context.Context, userID int64, key string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error)
	Stats(ctx context.Context, now time.Time) (*domain.Stats, error)
}

type Admission interface {
	Evaluate(ctx context.Context, req domain.SlotRequest) (domain.Decision, error)
}

type ReminderArranger interface {
	ArrangeReminder(b *domain.Booking)
	Cancel(bookingID string)
}

type AdminResolver interface {
	IsAdmin(userID int64) bool
}
