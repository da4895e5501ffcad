package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"
)

var studio = time.FixedZone("MSK", 3*60*60)

var bookingCols = []string{
	"id", "user_id", "booking_date", "start_time", "duration_minutes",
	"credit_consuming", "override", "status", "idempotency_key",
	"reminded_lead_minutes", "created_at", "cancelled_at",
}

func newMockDB(t *testing.T) (*dbpg.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &dbpg.DB{Master: db}, mock
}

func newBooking(clock string, consuming bool) *domain.Booking {
	_, start, err := domain.ParseSlot(studio, "2024-06-01", clock)
	if err != nil {
		panic(err)
	}
	return &domain.Booking{
		ID:              "9a1f7c52-7f4a-4c0e-a3a4-2f1f1f0d0b01",
		UserID:          42,
		Date:            domain.DayStart(start, studio),
		StartTime:       start,
		Duration:        time.Hour,
		CreditConsuming: consuming,
		Status:          domain.BookingStatusActive,
		CreatedAt:       time.Now().UTC(),
	}
}

func bookingRow(rows *sqlmock.Rows, b *domain.Booking) *sqlmock.Rows {
	return rows.AddRow(
		b.ID, b.UserID, b.Date, b.StartTime, int64(b.Duration/time.Minute),
		b.CreditConsuming, b.Override, string(b.Status), b.IdempotencyKey,
		int64(0), b.CreatedAt, nil,
	)
}

func TestBookingRepository_InsertBooking_DebitsCredit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)
	b := newBooking("10:00", true)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(1))
	mock.ExpectQuery(`FROM bookings WHERE user_id = \$1 AND booking_date = \$2 AND status = \$3`).
		WithArgs(int64(42), "2024-06-01", "active").
		WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET balance = balance - 1 WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InsertBooking(context.Background(), b)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_InsertBooking_FreeBookingSkipsDebit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)
	first := newBooking("10:00", true)
	second := newBooking("14:00", false)
	second.ID = "5d0c7a1e-8d55-4d7b-9f4e-6c0b1b7f2a10"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM users WHERE id = \$1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(0))
	mock.ExpectQuery(`FROM bookings WHERE user_id = \$1 AND booking_date = \$2 AND status = \$3`).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), first))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InsertBooking(context.Background(), second)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_InsertBooking_StaleDecision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)
	first := newBooking("10:00", true)
	racing := newBooking("10:30", true)
	racing.ID = "0b8d2a55-3c4e-4f7a-8f3b-1d2e3f4a5b6c"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM users WHERE id = \$1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(0))
	mock.ExpectQuery(`FROM bookings WHERE user_id = \$1 AND booking_date = \$2 AND status = \$3`).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), first))
	mock.ExpectRollback()

	err := repo.InsertBooking(context.Background(), racing)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_InsertBooking_DuplicateKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)
	b := newBooking("10:00", true)
	b.IdempotencyKey = "req-1"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM users WHERE id = \$1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(0))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM bookings WHERE user_id = \$1 AND idempotency_key = \$2\)`).
		WithArgs(int64(42), "req-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.InsertBooking(context.Background(), b)

	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_InsertBooking_UniqueIndexRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)
	b := newBooking("10:00", true)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM users WHERE id = \$1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(3))
	mock.ExpectQuery(`FROM bookings WHERE user_id = \$1 AND booking_date = \$2 AND status = \$3`).
		WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: "bookings_one_credit_per_day"})
	mock.ExpectRollback()

	err := repo.InsertBooking(context.Background(), b)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_InsertBooking_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM users WHERE id = \$1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	err := repo.InsertBooking(context.Background(), newBooking("10:00", true))

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CancelBooking_RefundsLastOfDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)
	b := newBooking("10:00", true)

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \$1`).
		WithArgs(b.ID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(42)))
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT 1 FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \$1 FOR UPDATE`).
		WithArgs(b.ID).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), b))
	mock.ExpectExec(`UPDATE bookings SET status = \$2, cancelled_at = \$3 WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id FROM bookings\s+WHERE user_id = \$1 AND booking_date = \$2 AND status = \$3\s+ORDER BY start_time LIMIT 1`).
		WithArgs(int64(42), "2024-06-01", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE users SET balance = balance \+ 1 WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.CancelBooking(context.Background(), b.ID)

	require.NoError(t, err)
	assert.True(t, res.Refunded)
	assert.False(t, res.AlreadyCancelled)
	assert.Equal(t, domain.BookingStatusCancelled, res.Booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CancelBooking_MovesCreditToEarliestRemaining(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)
	b := newBooking("10:00", true)
	const nextID = "5d0c8a0e-1b7e-4f7e-9a53-0c3f3b0a2e11"

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \$1`).
		WithArgs(b.ID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(42)))
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT 1 FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \$1 FOR UPDATE`).
		WithArgs(b.ID).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), b))
	mock.ExpectExec(`UPDATE bookings SET status = \$2, cancelled_at = \$3 WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id FROM bookings\s+WHERE user_id = \$1 AND booking_date = \$2 AND status = \$3\s+ORDER BY start_time LIMIT 1`).
		WithArgs(int64(42), "2024-06-01", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(nextID))
	mock.ExpectExec(`UPDATE bookings SET credit_consuming = TRUE, override = \$2 WHERE id = \$1`).
		WithArgs(nextID, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.CancelBooking(context.Background(), b.ID)

	require.NoError(t, err)
	assert.False(t, res.Refunded)
	assert.Equal(t, nextID, res.CreditMovedTo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CancelBooking_AlreadyCancelled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)
	b := newBooking("10:00", true)
	b.Status = domain.BookingStatusCancelled

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(42)))
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT 1 FROM users WHERE id = \$1 FOR UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM bookings WHERE id = \$1 FOR UPDATE`).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), b))
	mock.ExpectRollback()

	res, err := repo.CancelBooking(context.Background(), b.ID)

	require.NoError(t, err)
	assert.True(t, res.AlreadyCancelled)
	assert.False(t, res.Refunded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CancelBooking_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepo(db, studio)

	mock.ExpectQuery(`SELECT user_id FROM bookings WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.CancelBooking(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AdjustBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`UPDATE users SET balance = balance \+ \$2`).
		WithArgs(int64(42), 3).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(3))

	balance, err := repo.AdjustBalance(context.Background(), 42, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AdjustBalance_Negative(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`UPDATE users SET balance = balance \+ \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE id = \$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.AdjustBalance(context.Background(), 42, -1)

	assert.ErrorIs(t, err, domain.ErrNegativeBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AdjustBalance_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`UPDATE users SET balance = balance \+ \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE id = \$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.AdjustBalance(context.Background(), 7, 1)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
