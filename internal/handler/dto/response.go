package dto

import (
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

type BookingResponse struct {
	ID              string  `json:"id"`
	UserID          int64   `json:"user_id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	CreditConsuming bool    `json:"credit_consuming"`
	Override        bool    `json:"override,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
}

type CancelResponse struct {
	Booking          BookingResponse `json:"booking"`
	Refunded         bool            `json:"refunded"`
	AlreadyCancelled bool            `json:"already_cancelled"`
	CreditMovedTo    string          `json:"credit_moved_to,omitempty"`
}

type DecisionResponse struct {
	Admit           bool `json:"admit"`
	CreditConsuming bool `json:"credit_consuming"`
	Override        bool `json:"override"`
}

type UserResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Balance     int    `json:"balance"`
	CreatedAt   string `json:"created_at"`
}

type BalanceResponse struct {
	UserID  int64 `json:"user_id"`
	Balance int   `json:"balance"`
}

type StatsResponse struct {
	Users                int `json:"users"`
	ActiveBookings       int `json:"active_bookings"`
	FutureBookings       int `json:"future_bookings"`
	CancelledBookings    int `json:"cancelled_bookings"`
	CreditsInCirculation int `json:"credits_in_circulation"`
}

type IntervalResponse struct {
	BookingID string `json:"booking_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

type ErrorResponse struct {
	Error    string            `json:"error"`
	Conflict *IntervalResponse `json:"conflict,omitempty"`
}

func ToBookingResponse(b *domain.Booking, loc *time.Location) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		Date:            b.Date.In(loc).Format(domain.DateLayout),
		StartTime:       b.StartTime.In(loc).Format(domain.ClockLayout),
		EndTime:         b.EndTime().In(loc).Format(domain.ClockLayout),
		DurationMinutes: int(b.Duration / time.Minute),
		CreditConsuming: b.CreditConsuming,
		Override:        b.Override,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
	if b.CancelledAt != nil {
		at := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &at
	}
	return resp
}

func ToCancelResponse(c *domain.Cancellation, loc *time.Location) CancelResponse {
	return CancelResponse{
		Booking:          ToBookingResponse(c.Booking, loc),
		Refunded:         c.Refunded,
		AlreadyCancelled: c.AlreadyCancelled,
		CreditMovedTo:    c.CreditMovedTo,
	}
}

func ToDecisionResponse(d domain.Decision) DecisionResponse {
	return DecisionResponse{
		Admit:           d.Admit,
		CreditConsuming: d.CreditConsuming,
		Override:        d.Override,
	}
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Balance:     u.Balance,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

func ToStatsResponse(s *domain.Stats) StatsResponse {
	return StatsResponse{
		Users:                s.Users,
		ActiveBookings:       s.ActiveBookings,
		FutureBookings:       s.FutureBookings,
		CancelledBookings:    s.CancelledBookings,
		CreditsInCirculation: s.CreditsInCirculation,
	}
}

func ToIntervalResponse(e *domain.ConflictError, loc *time.Location) *IntervalResponse {
	return &IntervalResponse{
		BookingID: e.BookingID,
		Start:     e.Existing.Start.In(loc).Format(domain.ClockLayout),
		End:       e.Existing.End.In(loc).Format(domain.ClockLayout),
	}
}
