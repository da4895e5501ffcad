package memory

import (
	"context"
	"sort"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/admission"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

type BookingRepository struct {
	s *Store
}

func NewBookingRepo(s *Store) *BookingRepository {
	return &BookingRepository{s: s}
}

func (r *BookingRepository) InsertBooking(_ context.Context, b *domain.Booking) error {
	unlock := r.s.lockUser(b.UserID)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[b.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}

	if b.IdempotencyKey != "" {
		for _, id := range r.s.byUser[b.UserID] {
			if r.s.bookings[id].IdempotencyKey == b.IdempotencyKey {
				return domain.ErrDuplicateRequest
			}
		}
	}

	if err := admission.Recheck(b, r.s.activeOnDate(b.UserID, b.Date), u.Balance); err != nil {
		return err
	}

	if b.Debits() {
		if u.Balance < 1 {
			return domain.ErrConflict
		}
		u.Balance--
	}

	stored := copyBooking(b)
	stored.Date = domain.DayStart(b.Date, r.s.loc)
	r.s.bookings[b.ID] = stored
	r.s.byUser[b.UserID] = append(r.s.byUser[b.UserID], b.ID)

	return nil
}

func (r *BookingRepository) CancelBooking(_ context.Context, id string) (*domain.Cancellation, error) {
	r.s.mu.RLock()
	b, ok := r.s.bookings[id]
	var userID int64
	if ok {
		userID = b.UserID
	}
	r.s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	unlock := r.s.lockUser(userID)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !b.Active() {
		return &domain.Cancellation{Booking: copyBooking(b), AlreadyCancelled: true}, nil
	}

	now := time.Now().UTC()
	b.Status = domain.BookingStatusCancelled
	b.CancelledAt = &now

	res := &domain.Cancellation{}
	if b.CreditConsuming {
		if next := r.s.earliestActiveOnDate(b.UserID, b.Date); next != nil {
			next.CreditConsuming = true
			next.Override = b.Override
			res.CreditMovedTo = next.ID
		} else if b.Debits() {
			if u, ok := r.s.users[b.UserID]; ok {
				u.Balance++
				res.Refunded = true
			}
		}
	}
	res.Booking = copyBooking(b)

	return res, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

func (r *BookingRepository) GetByIdempotencyKey(_ context.Context, userID int64, key string) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.byUser[userID] {
		if b := r.s.bookings[id]; key != "" && b.IdempotencyKey == key {
			return copyBooking(b), nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *BookingRepository) ListActiveByUserOnDate(_ context.Context, userID int64, date time.Time) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := r.s.activeOnDate(userID, date)
	sortByStart(res)
	return res, nil
}

func (r *BookingRepository) ListByUser(_ context.Context, userID int64) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := make([]*domain.Booking, 0, len(r.s.byUser[userID]))
	for _, id := range r.s.byUser[userID] {
		res = append(res, copyBooking(r.s.bookings[id]))
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].StartTime.After(res[j].StartTime)
	})

	return res, nil
}

func (r *BookingRepository) ListFutureBookings(_ context.Context, now time.Time) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var res []*domain.Booking
	for _, b := range r.s.bookings {
		if b.Active() && b.EndTime().After(now) {
			res = append(res, copyBooking(b))
		}
	}
	sortByStart(res)

	return res, nil
}

func (r *BookingRepository) MarkReminded(_ context.Context, id string, lead time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if b.RemindedLead == 0 || lead < b.RemindedLead {
		b.RemindedLead = lead
	}
	return nil
}

func (r *BookingRepository) Stats(_ context.Context, now time.Time) (*domain.Stats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s := &domain.Stats{Users: len(r.s.users)}
	for _, u := range r.s.users {
		s.CreditsInCirculation += u.Balance
	}
	for _, b := range r.s.bookings {
		if !b.Active() {
			s.CancelledBookings++
			continue
		}
		s.ActiveBookings++
		if b.StartTime.After(now) {
			s.FutureBookings++
		}
	}

	return s, nil
}

func sortByStart(bs []*domain.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		return bs[i].StartTime.Before(bs[j].StartTime)
	})
}
