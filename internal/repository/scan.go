package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/wb-go/wbf/retry"
)

const bookingColumns = `id, user_id, booking_date, start_time, duration_minutes,
		credit_consuming, override, status, COALESCE(idempotency_key, ''),
		COALESCE(reminded_lead_minutes, 0), created_at, cancelled_at`

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

func defaultStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: 3,
		Delay:    500 * time.Millisecond,
		Backoff:  2,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanBooking(row rowScanner, loc *time.Location) (*domain.Booking, error) {
	var (
		b            domain.Booking
		date         time.Time
		minutes      int
		remindedMins int
		cancelledAt  sql.NullTime
	)

	if err := row.Scan(
		&b.ID, &b.UserID, &date, &b.StartTime, &minutes,
		&b.CreditConsuming, &b.Override, &b.Status, &b.IdempotencyKey,
		&remindedMins, &b.CreatedAt, &cancelledAt,
	); err != nil {
		return nil, err
	}

	// DATE columns come back as UTC midnight
	b.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	b.StartTime = b.StartTime.In(loc)
	b.Duration = time.Duration(minutes) * time.Minute
	b.RemindedLead = time.Duration(remindedMins) * time.Minute
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}

	return &b, nil
}

func scanBookings(rows *sql.Rows, loc *time.Location) ([]*domain.Booking, error) {
	defer rows.Close()

	var res []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows, loc)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, b)
	}

	return res, rows.Err()
}
