package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// maxAdmissionAttempts bounds how often a request is re-evaluated after the
// ledger changed between the check and the insert.
const maxAdmissionAttempts = 2

type BookingService struct {
	checker     ports.Admission
	bookingRepo ports.BookingRepo
	reminders   ports.ReminderArranger
	notifier    ports.BookingNotifier
	events      ports.EventPublisher
	admins      ports.AdminResolver
	loc         *time.Location
	now         func() time.Time
	logger      logger.Logger
}

func NewBookingService(
	checker ports.Admission,
	bookingRepo ports.BookingRepo,
	reminders ports.ReminderArranger,
	notifier ports.BookingNotifier,
	events ports.EventPublisher,
	admins ports.AdminResolver,
	loc *time.Location,
	logger logger.Logger,
) *BookingService {
	return &BookingService{
		checker:     checker,
		bookingRepo: bookingRepo,
		reminders:   reminders,
		notifier:    notifier,
		events:      events,
		admins:      admins,
		loc:         loc,
		now:         time.Now,
		logger:      logger,
	}
}

// Evaluate is a dry run of Book.
func (s *BookingService) Evaluate(ctx context.Context, in domain.BookInput) (domain.Decision, error) {
	in, err := s.authorize(in)
	if err != nil {
		return domain.Decision{}, err
	}

	return s.checker.Evaluate(ctx, in.SlotRequest())
}

func (s *BookingService) Book(ctx context.Context, in domain.BookInput) (*domain.Booking, error) {
	in, err := s.authorize(in)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		existing, err := s.bookingRepo.GetByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrBookingNotFound) {
			return nil, fmt.Errorf("lookup idempotency key: %w", err)
		}
	}

	var booking *domain.Booking
	for attempt := 1; ; attempt++ {
		booking, err = s.tryBook(ctx, in)
		if err == nil {
			break
		}

		if errors.Is(err, domain.ErrDuplicateRequest) {
			return s.bookingRepo.GetByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
		}
		if !errors.Is(err, domain.ErrConflict) || attempt == maxAdmissionAttempts {
			return nil, err
		}

		s.logger.Warn("ledger changed during admission, re-evaluating",
			logger.Int64("user_id", in.UserID),
			logger.Int("attempt", attempt),
		)
	}

	s.reminders.ArrangeReminder(booking)

	s.logger.Info("booking created",
		logger.String("booking_id", booking.ID),
		logger.Int64("user_id", booking.UserID),
		logger.Int64("actor_id", in.ActorID),
		logger.String("start", booking.StartTime.Format(time.RFC3339)),
		logger.Duration("duration", booking.Duration),
		logger.Any("credit_consuming", booking.CreditConsuming),
	)

	go s.events.BookingCreated(context.WithoutCancel(ctx), booking)
	if in.ActorID != booking.UserID {
		go s.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), booking)
	}

	return booking, nil
}

func (s *BookingService) tryBook(ctx context.Context, in domain.BookInput) (*domain.Booking, error) {
	decision, err := s.checker.Evaluate(ctx, in.SlotRequest())
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		Date:            domain.DayStart(in.Date, s.loc),
		StartTime:       in.StartTime,
		Duration:        in.Duration,
		CreditConsuming: decision.CreditConsuming,
		Override:        decision.Override,
		Status:          domain.BookingStatusActive,
		IdempotencyKey:  in.IdempotencyKey,
		CreatedAt:       s.now().UTC(),
	}

	if err = s.bookingRepo.InsertBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	return booking, nil
}

// Cancel may be called by the booking owner or an administrator. Cancelling
// twice is not an error.
func (s *BookingService) Cancel(ctx context.Context, actorID int64, bookingID string) (*domain.Cancellation, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if booking.UserID != actorID && !s.admins.IsAdmin(actorID) {
		return nil, domain.ErrForbidden
	}

	res, err := s.bookingRepo.CancelBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.reminders.Cancel(bookingID)

	if res.AlreadyCancelled {
		return res, nil
	}

	s.logger.Info("booking cancelled",
		logger.String("booking_id", bookingID),
		logger.Int64("user_id", booking.UserID),
		logger.Int64("actor_id", actorID),
		logger.Any("refunded", res.Refunded),
		logger.String("credit_moved_to", res.CreditMovedTo),
	)

	go s.events.BookingCancelled(context.WithoutCancel(ctx), res)
	if actorID != booking.UserID {
		go s.notifier.NotifyBookingCancelled(context.WithoutCancel(ctx), res)
	}

	return res, nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

// ListUpcoming returns the user's active bookings that have not ended,
// earliest first.
func (s *BookingService) ListUpcoming(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	all, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := make([]*domain.Booking, 0, len(all))
	for _, b := range all {
		if b.Active() && b.EndTime().After(now) {
			res = append(res, b)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].StartTime.Before(res[j].StartTime)
	})

	return res, nil
}

func (s *BookingService) Stats(ctx context.Context, actorID int64) (*domain.Stats, error) {
	if !s.admins.IsAdmin(actorID) {
		return nil, domain.ErrForbidden
	}
	return s.bookingRepo.Stats(ctx, s.now())
}

// authorize lets users book for themselves only. Administrators may book
// for anyone and may use the override.
func (s *BookingService) authorize(in domain.BookInput) (domain.BookInput, error) {
	if in.ActorID == 0 {
		in.ActorID = in.UserID
	}

	if in.ActorID == in.UserID && !in.Override {
		return in, nil
	}

	if !s.admins.IsAdmin(in.ActorID) {
		return in, domain.ErrForbidden
	}

	return in, nil
}
