package admission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studio = time.FixedZone("MSK", 3*60*60)

type fakeLedger struct {
	bookings   []*domain.Booking
	balance    int
	listErr    error
	balanceErr error
}

func (f *fakeLedger) ListActiveByUserOnDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.listErr
}

func (f *fakeLedger) GetBalance(_ context.Context, _ int64) (int, error) {
	return f.balance, f.balanceErr
}

func at(day string, clock string) time.Time {
	_, start, err := domain.ParseSlot(studio, day, clock)
	if err != nil {
		panic(err)
	}
	return start
}

func request(day, clock string, d time.Duration) domain.SlotRequest {
	start := at(day, clock)
	return domain.SlotRequest{
		UserID:    42,
		Date:      domain.DayStart(start, studio),
		StartTime: start,
		Duration:  d,
	}
}

func booking(id, day, clock string, d time.Duration, consuming bool) *domain.Booking {
	start := at(day, clock)
	return &domain.Booking{
		ID:              id,
		UserID:          42,
		Date:            domain.DayStart(start, studio),
		StartTime:       start,
		Duration:        d,
		CreditConsuming: consuming,
		Status:          domain.BookingStatusActive,
	}
}

func TestDecide(t *testing.T) {
	first := booking("b1", "2024-06-01", "10:00", time.Hour, true)
	cancelled := booking("b0", "2024-06-01", "12:00", time.Hour, true)
	cancelled.Status = domain.BookingStatusCancelled

	tests := []struct {
		name     string
		req      domain.SlotRequest
		existing []*domain.Booking
		balance  int
		want     domain.Decision
		wantErr  error
	}{
		{
			name:    "first booking of the day consumes a credit",
			req:     request("2024-06-01", "10:00", time.Hour),
			balance: 1,
			want:    domain.Decision{Admit: true, CreditConsuming: true},
		},
		{
			name:     "second booking of the day is free",
			req:      request("2024-06-01", "14:00", time.Hour),
			existing: []*domain.Booking{first},
			balance:  0,
			want:     domain.Decision{Admit: true},
		},
		{
			name:     "overlap is rejected",
			req:      request("2024-06-01", "10:30", time.Hour),
			existing: []*domain.Booking{first},
			balance:  5,
			wantErr:  domain.ErrTimeConflict,
		},
		{
			name:     "back to back bookings do not overlap",
			req:      request("2024-06-01", "11:00", time.Hour),
			existing: []*domain.Booking{first},
			want:     domain.Decision{Admit: true},
		},
		{
			name:    "no credits on a fresh day",
			req:     request("2024-06-02", "10:00", time.Hour),
			balance: 0,
			wantErr: domain.ErrInsufficientCredit,
		},
		{
			name:     "cancelled bookings are ignored",
			req:      request("2024-06-01", "12:30", time.Hour),
			existing: []*domain.Booking{cancelled},
			balance:  1,
			want:     domain.Decision{Admit: true, CreditConsuming: true},
		},
		{
			name: "admin override admits without credits",
			req: func() domain.SlotRequest {
				r := request("2024-06-03", "10:00", time.Hour)
				r.Override = true
				return r
			}(),
			balance: 0,
			want:    domain.Decision{Admit: true, CreditConsuming: true, Override: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(tt.req, tt.existing, tt.balance)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, got.Admit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecide_ConflictCarriesInterval(t *testing.T) {
	first := booking("b1", "2024-06-01", "10:00", time.Hour, true)

	_, err := Decide(request("2024-06-01", "10:30", time.Hour), []*domain.Booking{first}, 1)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "b1", conflict.BookingID)
	assert.Equal(t, first.Interval(), conflict.Existing)
	assert.Contains(t, err.Error(), "10:00–11:00")
}

func TestValidate(t *testing.T) {
	now := at("2024-06-01", "09:00")

	tests := []struct {
		name    string
		req     domain.SlotRequest
		wantErr error
	}{
		{name: "ok", req: request("2024-06-01", "10:00", time.Hour)},
		{name: "ends exactly at midnight", req: request("2024-06-01", "22:00", 2*time.Hour)},
		{name: "zero duration", req: request("2024-06-01", "10:00", 0), wantErr: domain.ErrValidation},
		{name: "negative duration", req: request("2024-06-01", "10:00", -time.Hour), wantErr: domain.ErrValidation},
		{name: "past slot", req: request("2024-06-01", "08:00", time.Hour), wantErr: domain.ErrPastSlot},
		{name: "starts right now", req: request("2024-06-01", "09:00", time.Hour), wantErr: domain.ErrPastSlot},
		{name: "crosses midnight", req: request("2024-06-01", "23:00", 2*time.Hour), wantErr: domain.ErrCrossesDayBoundary},
		{
			name: "start not on date",
			req: func() domain.SlotRequest {
				r := request("2024-06-01", "10:00", time.Hour)
				r.Date = r.Date.AddDate(0, 0, 1)
				return r
			}(),
			wantErr: domain.ErrValidation,
		},
		{
			name: "missing user",
			req: func() domain.SlotRequest {
				r := request("2024-06-01", "10:00", time.Hour)
				r.UserID = 0
				return r
			}(),
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(now, tt.req, studio)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecheck(t *testing.T) {
	first := booking("b1", "2024-06-01", "10:00", time.Hour, true)

	fresh := booking("b2", "2024-06-01", "14:00", time.Hour, true)
	assert.NoError(t, Recheck(fresh, nil, 1))

	// another booking of the same day landed in between
	assert.ErrorIs(t, Recheck(fresh, []*domain.Booking{first}, 1), domain.ErrConflict)

	// balance was spent elsewhere
	assert.ErrorIs(t, Recheck(fresh, nil, 0), domain.ErrConflict)

	// the day's first booking was cancelled in between
	free := booking("b3", "2024-06-01", "16:00", time.Hour, false)
	assert.ErrorIs(t, Recheck(free, nil, 1), domain.ErrConflict)

	overlapping := booking("b4", "2024-06-01", "10:30", time.Hour, false)
	assert.ErrorIs(t, Recheck(overlapping, []*domain.Booking{first}, 1), domain.ErrConflict)
}

func TestChecker_Evaluate(t *testing.T) {
	now := at("2024-06-01", "08:00")
	ledger := &fakeLedger{balance: 1}
	c := NewChecker(ledger, ledger, studio, WithClock(func() time.Time { return now }))

	d, err := c.Evaluate(context.Background(), request("2024-06-01", "10:00", time.Hour))

	require.NoError(t, err)
	assert.True(t, d.Admit)
	assert.True(t, d.CreditConsuming)
}

func TestChecker_Evaluate_NormalizesDate(t *testing.T) {
	now := at("2024-06-01", "08:00")
	ledger := &fakeLedger{balance: 1}
	c := NewChecker(ledger, ledger, studio, WithClock(func() time.Time { return now }))

	req := request("2024-06-01", "10:00", time.Hour)
	req.Date = at("2024-06-01", "17:45")

	_, err := c.Evaluate(context.Background(), req)

	require.NoError(t, err)
}

func TestChecker_Evaluate_StoreErrors(t *testing.T) {
	now := at("2024-06-01", "08:00")
	storeErr := errors.New("db down")

	ledger := &fakeLedger{listErr: storeErr}
	c := NewChecker(ledger, ledger, studio, WithClock(func() time.Time { return now }))
	_, err := c.Evaluate(context.Background(), request("2024-06-01", "10:00", time.Hour))
	assert.ErrorIs(t, err, storeErr)

	ledger = &fakeLedger{balanceErr: domain.ErrUserNotFound}
	c = NewChecker(ledger, ledger, studio, WithClock(func() time.Time { return now }))
	_, err = c.Evaluate(context.Background(), request("2024-06-01", "10:00", time.Hour))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestChecker_Evaluate_PastSlotSkipsStore(t *testing.T) {
	now := at("2024-06-01", "12:00")
	ledger := &fakeLedger{listErr: errors.New("must not be called")}
	c := NewChecker(ledger, ledger, studio, WithClock(func() time.Time { return now }))

	_, err := c.Evaluate(context.Background(), request("2024-06-01", "10:00", time.Hour))

	assert.ErrorIs(t, err, domain.ErrPastSlot)
}
