// Package admission decides whether a slot request can be booked and whether
// the booking takes the day's visit credit.
package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

type BookingReader interface {
	ListActiveByUserOnDate(ctx context.Context, userID int64, date time.Time) ([]*domain.Booking, error)
}

type BalanceReader interface {
	GetBalance(ctx context.Context, userID int64) (int, error)
}

type Checker struct {
	bookings BookingReader
	balances BalanceReader
	loc      *time.Location
	now      func() time.Time
}

type Option func(*Checker)

func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

func NewChecker(bookings BookingReader, balances BalanceReader, loc *time.Location, opts ...Option) *Checker {
	c := &Checker{
		bookings: bookings,
		balances: balances,
		loc:      loc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Evaluate is read-only. Persisting the outcome is the caller's job.
func (c *Checker) Evaluate(ctx context.Context, req domain.SlotRequest) (domain.Decision, error) {
	req.Date = domain.DayStart(req.Date, c.loc)

	if err := Validate(c.now(), req, c.loc); err != nil {
		return domain.Decision{}, err
	}

	existing, err := c.bookings.ListActiveByUserOnDate(ctx, req.UserID, req.Date)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("list bookings: %w", err)
	}

	balance, err := c.balances.GetBalance(ctx, req.UserID)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("get balance: %w", err)
	}

	return Decide(req, existing, balance)
}

// Validate checks the parts of a request that do not depend on ledger state.
func Validate(now time.Time, req domain.SlotRequest, loc *time.Location) error {
	if req.UserID == 0 {
		return fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if req.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}
	if !domain.SameDay(req.StartTime, req.Date, loc) {
		return fmt.Errorf("%w: start time is not on the requested date", domain.ErrValidation)
	}
	if !req.StartTime.After(now) {
		return domain.ErrPastSlot
	}

	nextDay := domain.DayStart(req.Date, loc).AddDate(0, 0, 1)
	if req.StartTime.Add(req.Duration).After(nextDay) {
		return domain.ErrCrossesDayBoundary
	}

	return nil
}

// Decide applies the overlap and visit-credit rules to the user's bookings
// of the requested day.
func Decide(req domain.SlotRequest, existing []*domain.Booking, balance int) (domain.Decision, error) {
	want := req.Interval()

	hasPrior := false
	for _, b := range existing {
		if !b.Active() {
			continue
		}
		hasPrior = true

		if b.Interval().Overlaps(want) {
			return domain.Decision{}, &domain.ConflictError{
				BookingID: b.ID,
				Existing:  b.Interval(),
			}
		}
	}

	if hasPrior {
		return domain.Decision{Admit: true}, nil
	}

	if req.Override {
		return domain.Decision{Admit: true, CreditConsuming: true, Override: true}, nil
	}

	if balance < 1 {
		return domain.Decision{}, domain.ErrInsufficientCredit
	}

	return domain.Decision{Admit: true, CreditConsuming: true}, nil
}

// Recheck re-runs Decide for an already decided booking against the ledger
// state seen at commit time. Any difference from the original decision is
// reported as ErrConflict so the caller can evaluate again.
func Recheck(b *domain.Booking, existing []*domain.Booking, balance int) error {
	req := domain.SlotRequest{
		UserID:    b.UserID,
		Date:      b.Date,
		StartTime: b.StartTime,
		Duration:  b.Duration,
		Override:  b.Override,
	}

	d, err := Decide(req, existing, balance)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	if d.CreditConsuming != b.CreditConsuming {
		return domain.ErrConflict
	}

	return nil
}
