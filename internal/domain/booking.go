package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID              string        `json:"id"`
	UserID          int64         `json:"user_id"`
	Date            time.Time     `json:"date"`
	StartTime       time.Time     `json:"start_time"`
	Duration        time.Duration `json:"duration"`
	CreditConsuming bool          `json:"credit_consuming"`
	Override        bool          `json:"override"`
	Status          BookingStatus `json:"status"`
	IdempotencyKey  string        `json:"idempotency_key,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`

	// RemindedLead is the smallest lead time whose reminder is already done.
	// Zero means no reminder has been delivered yet.
	RemindedLead time.Duration `json:"-"`
}

func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(b.Duration)
}

func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime()}
}

func (b *Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}

// Debits reports whether inserting b takes one visit credit from the balance.
func (b *Booking) Debits() bool {
	return b.CreditConsuming && !b.Override
}

// BookInput is what a request handler collects from the user.
type BookInput struct {
	ActorID        int64
	UserID         int64
	Date           time.Time
	StartTime      time.Time
	Duration       time.Duration
	Override       bool
	IdempotencyKey string
}

func (in BookInput) SlotRequest() SlotRequest {
	return SlotRequest{
		UserID:    in.UserID,
		Date:      in.Date,
		StartTime: in.StartTime,
		Duration:  in.Duration,
		Override:  in.Override,
	}
}

type Cancellation struct {
	Booking          *Booking
	AlreadyCancelled bool
	Refunded         bool
	// CreditMovedTo is the same-day booking that took over the day's credit.
	CreditMovedTo string
}
