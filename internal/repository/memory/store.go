// Package memory is an in-process ledger used by tests and by the "memory"
// storage driver. It enforces the same invariants as the Postgres store:
// writes of one user are serialized by a per-user lock and re-validated
// against the current ledger before they are applied.
package memory

import (
	"sync"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

type Store struct {
	loc *time.Location

	mu       sync.RWMutex
	users    map[int64]*domain.User
	bookings map[string]*domain.Booking
	byUser   map[int64][]string

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

func NewStore(loc *time.Location) *Store {
	return &Store{
		loc:      loc,
		users:    make(map[int64]*domain.User),
		bookings: make(map[string]*domain.Booking),
		byUser:   make(map[int64][]string),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// lockUser serializes ledger writes of one user. Other users are not blocked.
func (s *Store) lockUser(userID int64) func() {
	s.locksMu.Lock()
	m, ok := s.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[userID] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *Store) activeOnDate(userID int64, date time.Time) []*domain.Booking {
	day := domain.DayStart(date, s.loc)

	var res []*domain.Booking
	for _, id := range s.byUser[userID] {
		b := s.bookings[id]
		if b.Active() && domain.DayStart(b.Date, s.loc).Equal(day) {
			res = append(res, copyBooking(b))
		}
	}
	return res
}

// earliestActiveOnDate returns the stored booking, not a copy.
func (s *Store) earliestActiveOnDate(userID int64, date time.Time) *domain.Booking {
	day := domain.DayStart(date, s.loc)

	var first *domain.Booking
	for _, id := range s.byUser[userID] {
		b := s.bookings[id]
		if !b.Active() || !domain.DayStart(b.Date, s.loc).Equal(day) {
			continue
		}
		if first == nil || b.StartTime.Before(first.StartTime) {
			first = b
		}
	}
	return first
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}
