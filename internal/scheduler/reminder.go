package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

type State int

const (
	StatePending State = iota
	StateFired
	StateDone
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFired:
		return "fired"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type reminder struct {
	booking *domain.Booking
	lead    time.Duration
	fireAt  time.Time
	state   State
	timer   *time.Timer
	// cancel stops retries of a delivery that is already in flight
	cancel context.CancelFunc
}

type entry struct {
	arranged  time.Time
	reminders []*reminder
}

// plan builds the reminders of b. leads must be sorted largest first.
// Leads already covered by the booking's watermark are skipped. When several
// leads are overdue only the one closest to the start is kept, so a late
// start produces a single catch-up reminder.
func plan(b *domain.Booking, leads []time.Duration, now time.Time) []*reminder {
	if !b.StartTime.After(now) {
		return nil
	}

	var (
		res     []*reminder
		overdue *reminder
	)
	for _, lead := range leads {
		if lead <= 0 {
			continue
		}
		if b.RemindedLead > 0 && lead >= b.RemindedLead {
			continue
		}

		r := &reminder{
			booking: copyBooking(b),
			lead:    lead,
			fireAt:  b.StartTime.Add(-lead),
			state:   StatePending,
		}
		if !r.fireAt.After(now) {
			overdue = r
			continue
		}
		res = append(res, r)
	}

	if overdue != nil {
		res = append(res, overdue)
	}

	return res
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	return &c
}

func defaultFormat(b *domain.Booking, _ time.Duration) string {
	return fmt.Sprintf("Reminder: booking at %s", b.StartTime.Format(time.RFC3339))
}
