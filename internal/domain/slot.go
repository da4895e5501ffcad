package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) String() string {
	return i.Start.Format(ClockLayout) + "–" + i.End.Format(ClockLayout)
}

type SlotRequest struct {
	UserID    int64
	Date      time.Time
	StartTime time.Time
	Duration  time.Duration
	Override  bool
}

func (r SlotRequest) Interval() Interval {
	return Interval{Start: r.StartTime, End: r.StartTime.Add(r.Duration)}
}

// Decision is the outcome of admission for a slot request.
type Decision struct {
	Admit           bool `json:"admit"`
	CreditConsuming bool `json:"credit_consuming"`
	Override        bool `json:"override"`
}

// DayStart truncates t to midnight of its calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayStart(a, loc).Equal(DayStart(b, loc))
}

// ParseSlot combines a "2006-01-02" date and a "15:04" clock time in loc.
func ParseSlot(loc *time.Location, date, clock string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	hm, err := time.ParseInLocation(ClockLayout, clock, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_time must be HH:MM", ErrValidation)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, loc)
	return day, start, nil
}
