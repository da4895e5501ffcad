package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

var studio = time.FixedZone("MSK", 3*60*60)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type bookingDeps struct {
	checker   *mocks.MockAdmission
	repo      *mocks.MockBookingRepo
	reminders *mocks.MockReminderArranger
	notifier  *mocks.MockBookingNotifier
	events    *mocks.MockEventPublisher
	admins    *mocks.MockAdminResolver
}

func newBookingService(t *testing.T) (*BookingService, bookingDeps) {
	d := bookingDeps{
		checker:   mocks.NewMockAdmission(t),
		repo:      mocks.NewMockBookingRepo(t),
		reminders: mocks.NewMockReminderArranger(t),
		notifier:  mocks.NewMockBookingNotifier(t),
		events:    mocks.NewMockEventPublisher(t),
		admins:    mocks.NewMockAdminResolver(t),
	}
	svc := NewBookingService(d.checker, d.repo, d.reminders, d.notifier, d.events, d.admins, studio, newTestLogger(t))
	return svc, d
}

func bookInput(userID int64, date, clock string, minutes int) domain.BookInput {
	day, start, err := domain.ParseSlot(studio, date, clock)
	if err != nil {
		panic(err)
	}
	return domain.BookInput{
		ActorID:   userID,
		UserID:    userID,
		Date:      day,
		StartTime: start,
		Duration:  time.Duration(minutes) * time.Minute,
	}
}

func done() (chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	return ch, func() { ch <- struct{}{} }
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("background call did not happen")
	}
}

func TestBookingService_Book_Success(t *testing.T) {
	svc, d := newBookingService(t)
	in := bookInput(1, "2030-03-10", "10:00", 60)
	published, signal := done()

	d.checker.EXPECT().Evaluate(mock.Anything, in.SlotRequest()).
		Return(domain.Decision{Admit: true, CreditConsuming: true}, nil)
	d.repo.EXPECT().InsertBooking(mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	d.reminders.EXPECT().ArrangeReminder(mock.AnythingOfType("*domain.Booking")).Return()
	d.events.EXPECT().BookingCreated(mock.Anything, mock.Anything).Return().Run(func(context.Context, *domain.Booking) {
		signal()
	})

	b, err := svc.Book(context.Background(), in)

	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, int64(1), b.UserID)
	assert.True(t, b.CreditConsuming)
	assert.Equal(t, domain.BookingStatusActive, b.Status)
	assert.True(t, b.Date.Equal(in.Date))

	waitFor(t, published)
}

func TestBookingService_Book_Rejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"past slot", domain.ErrPastSlot},
		{"crosses midnight", domain.ErrCrossesDayBoundary},
		{"no credit", domain.ErrInsufficientCredit},
		{"overlap", &domain.ConflictError{BookingID: "b0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newBookingService(t)
			in := bookInput(1, "2030-03-10", "10:00", 60)

			d.checker.EXPECT().Evaluate(mock.Anything, mock.Anything).Return(domain.Decision{}, tt.err)

			_, err := svc.Book(context.Background(), in)

			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBookingService_Book_RetriesOnceAfterConflict(t *testing.T) {
	svc, d := newBookingService(t)
	in := bookInput(1, "2030-03-10", "10:00", 60)
	published, signal := done()

	d.checker.EXPECT().Evaluate(mock.Anything, mock.Anything).
		Return(domain.Decision{Admit: true, CreditConsuming: true}, nil).Once()
	d.repo.EXPECT().InsertBooking(mock.Anything, mock.Anything).Return(domain.ErrConflict).Once()
	d.checker.EXPECT().Evaluate(mock.Anything, mock.Anything).
		Return(domain.Decision{Admit: true}, nil).Once()
	d.repo.EXPECT().InsertBooking(mock.Anything, mock.Anything).Return(nil).Once()
	d.reminders.EXPECT().ArrangeReminder(mock.Anything).Return()
	d.events.EXPECT().BookingCreated(mock.Anything, mock.Anything).Return().Run(func(context.Context, *domain.Booking) {
		signal()
	})

	b, err := svc.Book(context.Background(), in)

	require.NoError(t, err)
	assert.False(t, b.CreditConsuming)
	waitFor(t, published)
}

func TestBookingService_Book_GivesUpAfterSecondConflict(t *testing.T) {
	svc, d := newBookingService(t)
	in := bookInput(1, "2030-03-10", "10:00", 60)

	d.checker.EXPECT().Evaluate(mock.Anything, mock.Anything).
		Return(domain.Decision{Admit: true, CreditConsuming: true}, nil).Times(2)
	d.repo.EXPECT().InsertBooking(mock.Anything, mock.Anything).Return(domain.ErrConflict).Times(2)

	_, err := svc.Book(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestBookingService_Book_IdempotentReplay(t *testing.T) {
	svc, d := newBookingService(t)
	in := bookInput(1, "2030-03-10", "10:00", 60)
	in.IdempotencyKey = "req-1"
	existing := &domain.Booking{ID: "b1", UserID: 1, IdempotencyKey: "req-1"}

	d.repo.EXPECT().GetByIdempotencyKey(mock.Anything, int64(1), "req-1").Return(existing, nil)

	b, err := svc.Book(context.Background(), in)

	require.NoError(t, err)
	assert.Same(t, existing, b)
}

func TestBookingService_Book_ConcurrentDuplicate(t *testing.T) {
	svc, d := newBookingService(t)
	in := bookInput(1, "2030-03-10", "10:00", 60)
	in.IdempotencyKey = "req-1"
	existing := &domain.Booking{ID: "b1", UserID: 1, IdempotencyKey: "req-1"}

	d.repo.EXPECT().GetByIdempotencyKey(mock.Anything, int64(1), "req-1").Return(nil, domain.ErrBookingNotFound).Once()
	d.checker.EXPECT().Evaluate(mock.Anything, mock.Anything).
		Return(domain.Decision{Admit: true, CreditConsuming: true}, nil)
	d.repo.EXPECT().InsertBooking(mock.Anything, mock.Anything).Return(domain.ErrDuplicateRequest)
	d.repo.EXPECT().GetByIdempotencyKey(mock.Anything, int64(1), "req-1").Return(existing, nil).Once()

	b, err := svc.Book(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
}

func TestBookingService_Book_ForOtherUserRequiresAdmin(t *testing.T) {
	svc, d := newBookingService(t)
	in := bookInput(2, "2030-03-10", "10:00", 60)
	in.ActorID = 1

	d.admins.EXPECT().IsAdmin(int64(1)).Return(false)

	_, err := svc.Book(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBookingService_Book_AdminOverrideNotifiesUser(t *testing.T) {
	svc, d := newBookingService(t)
	in := bookInput(2, "2030-03-10", "10:00", 60)
	in.ActorID = 1
	in.Override = true
	published, signalPublished := done()
	notified, signalNotified := done()

	d.admins.EXPECT().IsAdmin(int64(1)).Return(true)
	d.checker.EXPECT().Evaluate(mock.Anything, mock.MatchedBy(func(r domain.SlotRequest) bool { return r.Override })).
		Return(domain.Decision{Admit: true, CreditConsuming: true, Override: true}, nil)
	d.repo.EXPECT().InsertBooking(mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Override && b.CreditConsuming && !b.Debits()
	})).Return(nil)
	d.reminders.EXPECT().ArrangeReminder(mock.Anything).Return()
	d.events.EXPECT().BookingCreated(mock.Anything, mock.Anything).Return().Run(func(context.Context, *domain.Booking) {
		signalPublished()
	})
	d.notifier.EXPECT().NotifyBookingCreated(mock.Anything, mock.Anything).Return().Run(func(context.Context, *domain.Booking) {
		signalNotified()
	})

	_, err := svc.Book(context.Background(), in)

	require.NoError(t, err)
	waitFor(t, published)
	waitFor(t, notified)
}

func TestBookingService_Cancel_ByOwner(t *testing.T) {
	svc, d := newBookingService(t)
	b := &domain.Booking{ID: "b1", UserID: 1, Status: domain.BookingStatusActive}
	res := &domain.Cancellation{Booking: b, Refunded: true}
	published, signal := done()

	d.repo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	d.repo.EXPECT().CancelBooking(mock.Anything, "b1").Return(res, nil)
	d.reminders.EXPECT().Cancel("b1").Return()
	d.events.EXPECT().BookingCancelled(mock.Anything, res).Return().Run(func(context.Context, *domain.Cancellation) {
		signal()
	})

	got, err := svc.Cancel(context.Background(), 1, "b1")

	require.NoError(t, err)
	assert.True(t, got.Refunded)
	waitFor(t, published)
}

func TestBookingService_Cancel_Twice(t *testing.T) {
	svc, d := newBookingService(t)
	b := &domain.Booking{ID: "b1", UserID: 1, Status: domain.BookingStatusCancelled}

	d.repo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	d.repo.EXPECT().CancelBooking(mock.Anything, "b1").Return(&domain.Cancellation{Booking: b, AlreadyCancelled: true}, nil)
	d.reminders.EXPECT().Cancel("b1").Return()

	got, err := svc.Cancel(context.Background(), 1, "b1")

	require.NoError(t, err)
	assert.True(t, got.AlreadyCancelled)
}

func TestBookingService_Cancel_Forbidden(t *testing.T) {
	svc, d := newBookingService(t)

	d.repo.EXPECT().GetByID(mock.Anything, "b1").Return(&domain.Booking{ID: "b1", UserID: 1}, nil)
	d.admins.EXPECT().IsAdmin(int64(2)).Return(false)

	_, err := svc.Cancel(context.Background(), 2, "b1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBookingService_Cancel_NotFound(t *testing.T) {
	svc, d := newBookingService(t)

	d.repo.EXPECT().GetByID(mock.Anything, "nope").Return(nil, domain.ErrBookingNotFound)

	_, err := svc.Cancel(context.Background(), 1, "nope")

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_ListUpcoming(t *testing.T) {
	svc, d := newBookingService(t)
	now := time.Date(2030, 3, 10, 12, 0, 0, 0, studio)
	svc.now = func() time.Time { return now }

	past := &domain.Booking{ID: "past", StartTime: now.Add(-3 * time.Hour), Duration: time.Hour}
	running := &domain.Booking{ID: "running", StartTime: now.Add(-30 * time.Minute), Duration: time.Hour}
	later := &domain.Booking{ID: "later", StartTime: now.Add(5 * time.Hour), Duration: time.Hour}
	soon := &domain.Booking{ID: "soon", StartTime: now.Add(time.Hour), Duration: time.Hour}
	cancelled := &domain.Booking{ID: "cancelled", StartTime: now.Add(2 * time.Hour), Duration: time.Hour,
		Status: domain.BookingStatusCancelled}

	d.repo.EXPECT().ListByUser(mock.Anything, int64(1)).
		Return([]*domain.Booking{later, cancelled, soon, running, past}, nil)

	got, err := svc.ListUpcoming(context.Background(), 1)

	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"running", "soon", "later"}, ids)
}

func TestBookingService_Stats_AdminOnly(t *testing.T) {
	svc, d := newBookingService(t)

	d.admins.EXPECT().IsAdmin(int64(1)).Return(false)
	d.admins.EXPECT().IsAdmin(int64(9)).Return(true)
	d.repo.EXPECT().Stats(mock.Anything, mock.Anything).Return(&domain.Stats{Users: 3}, nil)

	_, err := svc.Stats(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	s, err := svc.Stats(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Users)
}

func TestBookingService_Book_RepoError(t *testing.T) {
	svc, d := newBookingService(t)
	in := bookInput(1, "2030-03-10", "10:00", 60)
	repoErr := errors.New("db error")

	d.checker.EXPECT().Evaluate(mock.Anything, mock.Anything).
		Return(domain.Decision{Admit: true, CreditConsuming: true}, nil)
	d.repo.EXPECT().InsertBooking(mock.Anything, mock.Anything).Return(repoErr)

	_, err := svc.Book(context.Background(), in)

	assert.ErrorIs(t, err, repoErr)
}
