package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/admission"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type BookingRepository struct {
	db       *dbpg.DB
	loc      *time.Location
	strategy retry.Strategy
}

func NewBookingRepo(db *dbpg.DB, loc *time.Location) *BookingRepository {
	return &BookingRepository{
		db:       db,
		loc:      loc,
		strategy: defaultStrategy(),
	}
}

// InsertBooking stores b and takes the visit credit in one transaction.
// The user row is locked first, so requests of one user are serialized
// while different users never wait on each other.
func (r *BookingRepository) InsertBooking(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var balance int
	lockQuery := `SELECT balance FROM users WHERE id = $1 FOR UPDATE`
	if err = tx.QueryRowContext(ctx, lockQuery, b.UserID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("lock user: %w", err)
	}

	if b.IdempotencyKey != "" {
		var seen bool
		keyQuery := `SELECT EXISTS(SELECT 1 FROM bookings WHERE user_id = $1 AND idempotency_key = $2)`
		if err = tx.QueryRowContext(ctx, keyQuery, b.UserID, b.IdempotencyKey).Scan(&seen); err != nil {
			return fmt.Errorf("check idempotency key: %w", err)
		}
		if seen {
			return domain.ErrDuplicateRequest
		}
	}

	existing, err := r.listActiveOnDate(ctx, tx, b.UserID, b.Date)
	if err != nil {
		return err
	}

	if err = admission.Recheck(b, existing, balance); err != nil {
		return err
	}

	insertQuery := `INSERT INTO bookings (id, user_id, booking_date, start_time, duration_minutes,
					credit_consuming, override, status, idempotency_key, created_at)
				   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`
	_, err = tx.ExecContext(
		ctx, insertQuery,
		b.ID, b.UserID, b.Date.Format(domain.DateLayout), b.StartTime,
		int(b.Duration/time.Minute), b.CreditConsuming, b.Override,
		b.Status, b.IdempotencyKey, b.CreatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if pgErr.Constraint == "bookings_idempotency_key" {
				return domain.ErrDuplicateRequest
			}
			return domain.ErrConflict
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	if b.Debits() {
		debitQuery := `UPDATE users SET balance = balance - 1 WHERE id = $1`
		if _, err = tx.ExecContext(ctx, debitQuery, b.UserID); err != nil {
			var pgErr *pq.Error
			if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
				return domain.ErrNegativeBalance
			}
			return fmt.Errorf("debit credit: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}

	return nil
}

// CancelBooking is idempotent. When the cancelled booking held the day's
// credit, the earliest remaining booking that day takes it over; if none is
// left, a debited credit is given back in the same transaction.
func (r *BookingRepository) CancelBooking(ctx context.Context, id string) (*domain.Cancellation, error) {
	var userID int64
	ownerQuery := `SELECT user_id FROM bookings WHERE id = $1`
	if err := r.db.Master.QueryRowContext(ctx, ownerQuery, id).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking owner: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}

	selectQuery := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, selectQuery, id), r.loc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if !b.Active() {
		return &domain.Cancellation{Booking: b, AlreadyCancelled: true}, nil
	}

	now := time.Now().UTC()
	updateQuery := `UPDATE bookings SET status = $2, cancelled_at = $3 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, updateQuery, id, domain.BookingStatusCancelled, now); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	b.Status = domain.BookingStatusCancelled
	b.CancelledAt = &now

	res := &domain.Cancellation{Booking: b}

	if b.CreditConsuming {
		var nextID string
		nextQuery := `SELECT id FROM bookings
					  WHERE user_id = $1 AND booking_date = $2 AND status = $3
					  ORDER BY start_time LIMIT 1`
		err = tx.QueryRowContext(
			ctx, nextQuery, b.UserID, b.Date.Format(domain.DateLayout), domain.BookingStatusActive,
		).Scan(&nextID)

		switch {
		case err == nil:
			moveQuery := `UPDATE bookings SET credit_consuming = TRUE, override = $2 WHERE id = $1`
			if _, err = tx.ExecContext(ctx, moveQuery, nextID, b.Override); err != nil {
				return nil, fmt.Errorf("move day credit: %w", err)
			}
			res.CreditMovedTo = nextID
		case errors.Is(err, sql.ErrNoRows):
			if b.Debits() {
				refundQuery := `UPDATE users SET balance = balance + 1 WHERE id = $1`
				if _, err = tx.ExecContext(ctx, refundQuery, b.UserID); err != nil {
					return nil, fmt.Errorf("refund credit: %w", err)
				}
				res.Refunded = true
			}
		default:
			return nil, fmt.Errorf("find next day booking: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancel: %w", err)
	}

	return res, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b, err := scanBooking(row, r.loc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return b, nil
}

func (r *BookingRepository) GetByIdempotencyKey(ctx context.Context, userID int64, key string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE user_id = $1 AND idempotency_key = $2`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, userID, key)
	if err != nil {
		return nil, fmt.Errorf("get booking by key: %w", err)
	}

	b, err := scanBooking(row, r.loc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return b, nil
}

func (r *BookingRepository) ListActiveByUserOnDate(ctx context.Context, userID int64, date time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE user_id = $1 AND booking_date = $2 AND status = $3
			  ORDER BY start_time`

	rows, err := r.db.QueryWithRetry(
		ctx, r.strategy, query,
		userID, date.In(r.loc).Format(domain.DateLayout), domain.BookingStatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("list day bookings: %w", err)
	}

	return scanBookings(rows, r.loc)
}

func (r *BookingRepository) listActiveOnDate(ctx context.Context, q querier, userID int64, date time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE user_id = $1 AND booking_date = $2 AND status = $3`

	rows, err := q.QueryContext(ctx, query, userID, date.In(r.loc).Format(domain.DateLayout), domain.BookingStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list day bookings: %w", err)
	}

	return scanBookings(rows, r.loc)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE user_id = $1
			  ORDER BY start_time DESC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}

	return scanBookings(rows, r.loc)
}

// ListFutureBookings returns active bookings that have not ended yet.
func (r *BookingRepository) ListFutureBookings(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE status = $1
			    AND start_time + make_interval(mins => duration_minutes) > $2
			  ORDER BY start_time`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, domain.BookingStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("list future bookings: %w", err)
	}

	return scanBookings(rows, r.loc)
}

// MarkReminded only ever lowers the stored watermark.
func (r *BookingRepository) MarkReminded(ctx context.Context, id string, lead time.Duration) error {
	query := `UPDATE bookings
			  SET reminded_lead_minutes = $2
			  WHERE id = $1
			    AND (reminded_lead_minutes IS NULL OR reminded_lead_minutes > $2)`

	if _, err := r.db.ExecWithRetry(ctx, r.strategy, query, id, int(lead/time.Minute)); err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}

	return nil
}

func (r *BookingRepository) Stats(ctx context.Context, now time.Time) (*domain.Stats, error) {
	query := `SELECT
				(SELECT COUNT(*) FROM users),
				(SELECT COUNT(*) FROM bookings WHERE status = $1),
				(SELECT COUNT(*) FROM bookings WHERE status = $1 AND start_time > $3),
				(SELECT COUNT(*) FROM bookings WHERE status = $2),
				(SELECT COALESCE(SUM(balance), 0) FROM users)`

	row, err := r.db.QueryRowWithRetry(
		ctx, r.strategy, query,
		domain.BookingStatusActive, domain.BookingStatusCancelled, now,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	var s domain.Stats
	if err = row.Scan(
		&s.Users, &s.ActiveBookings, &s.FutureBookings,
		&s.CancelledBookings, &s.CreditsInCirculation,
	); err != nil {
		return nil, fmt.Errorf("scan stats: %w", err)
	}

	return &s, nil
}
