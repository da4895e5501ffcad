// Package scheduler delivers booking reminders at fixed lead times before the
// booking starts. Every (booking, lead) pair is one reminder with its own
// timer. A periodic resync against the ledger picks up bookings and
// cancellations made by other processes.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"
)

type bookingSource interface {
	ListFutureBookings(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	MarkReminded(ctx context.Context, id string, lead time.Duration) error
}

type sink interface {
	Send(ctx context.Context, userID int64, message string) error
}

type reminderObserver interface {
	ReminderSent(ctx context.Context, b *domain.Booking, lead time.Duration)
}

type Config struct {
	Leads       []time.Duration
	Interval    time.Duration
	SendTimeout time.Duration
	Retry       retry.Strategy
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

func WithFormatter(format func(b *domain.Booking, lead time.Duration) string) Option {
	return func(s *Scheduler) {
		s.format = format
	}
}

func WithObserver(o reminderObserver) Option {
	return func(s *Scheduler) {
		s.observer = o
	}
}

type Scheduler struct {
	source   bookingSource
	sink     sink
	observer reminderObserver
	cfg      Config
	now      func() time.Time
	format   func(b *domain.Booking, lead time.Duration) string
	logger   logger.Logger

	mu       sync.Mutex
	bookings map[string]*entry
	running  bool
	stopped  bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	done     chan struct{}
}

func New(source bookingSource, sink sink, cfg Config, logger logger.Logger, opts ...Option) *Scheduler {
	leads := append([]time.Duration(nil), cfg.Leads...)
	// largest lead first: the 24h reminder goes out before the 1h one
	sort.Slice(leads, func(i, j int) bool { return leads[i] > leads[j] })
	cfg.Leads = leads
	if cfg.Retry.Attempts < 1 {
		cfg.Retry.Attempts = 1
	}

	s := &Scheduler{
		source:   source,
		sink:     sink,
		cfg:      cfg,
		now:      time.Now,
		format:   defaultFormat,
		logger:   logger,
		bookings: make(map[string]*entry),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads future bookings, arms their reminders and then resyncs with
// the ledger every cfg.Interval until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running || s.stopped {
		s.mu.Unlock()
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	for _, e := range s.bookings {
		for _, r := range e.reminders {
			s.armLocked(r)
		}
	}
	runCtx := s.ctx
	s.mu.Unlock()
	defer close(s.done)

	s.logger.Info("scheduler started",
		logger.Duration("interval", s.cfg.Interval),
		logger.Any("leads", s.cfg.Leads),
	)

	s.resync(runCtx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			s.shutdown()
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.resync(runCtx)
		}
	}
}

// Stop cancels every pending timer and waits for in-flight deliveries.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	running := s.running
	cancel := s.cancel
	s.mu.Unlock()

	if !running {
		s.shutdown()
		return
	}

	cancel()
	<-s.done
}

func (s *Scheduler) shutdown() {
	s.mu.Lock()
	s.stopped = true
	for _, e := range s.bookings {
		for _, r := range e.reminders {
			if r.timer != nil {
				r.timer.Stop()
			}
		}
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// ArrangeReminder schedules the reminders of b. Arranging a booking that is
// already known is a no-op, so the resync pass can call it freely.
func (s *Scheduler) ArrangeReminder(b *domain.Booking) {
	if b == nil || !b.Active() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if _, ok := s.bookings[b.ID]; ok {
		return
	}

	now := s.now()
	planned := plan(b, s.cfg.Leads, now)
	s.bookings[b.ID] = &entry{arranged: now, reminders: planned}

	for _, r := range planned {
		s.logger.Debug("reminder arranged",
			logger.String("booking_id", b.ID),
			logger.Duration("lead", r.lead),
			logger.String("fire_at", r.fireAt.Format(time.RFC3339)),
		)
		if s.running {
			s.armLocked(r)
		}
	}
}

// Cancel drops the reminders of a booking. Pending reminders never fire; a
// delivery already in flight completes but is not retried. Cancel is
// idempotent.
func (s *Scheduler) Cancel(bookingID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.bookings[bookingID]
	if !ok {
		// tombstone so a stale resync cannot arm it again
		s.bookings[bookingID] = &entry{arranged: s.now()}
		return
	}

	for _, r := range e.reminders {
		s.cancelLocked(r)
	}
}

// States reports the state of every reminder of a booking by lead time.
func (s *Scheduler) States(bookingID string) map[time.Duration]State {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.bookings[bookingID]
	if !ok {
		return nil
	}

	res := make(map[time.Duration]State, len(e.reminders))
	for _, r := range e.reminders {
		res[r.lead] = r.state
	}
	return res
}

func (s *Scheduler) cancelLocked(r *reminder) {
	switch r.state {
	case StatePending:
		if r.timer != nil {
			r.timer.Stop()
		}
		r.state = StateCancelled
	case StateFired:
		if r.cancel != nil {
			r.cancel()
		}
	}
}

func (s *Scheduler) armLocked(r *reminder) {
	if r.state != StatePending || r.timer != nil {
		return
	}

	wait := r.fireAt.Sub(s.now())
	if wait < 0 {
		wait = 0
	}
	r.timer = time.AfterFunc(wait, func() { s.fire(r) })
}

func (s *Scheduler) fire(r *reminder) {
	s.mu.Lock()
	if r.state != StatePending || s.stopped {
		s.mu.Unlock()
		return
	}
	r.state = StateFired
	parent := s.ctx
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	defer cancel()
	s.deliver(parent, ctx, r)
}

// deliver retries under ctx, which Cancel ends together with the booking's
// reminders. A started attempt runs under parent, the scheduler's context, so
// cancelling the booking lets it finish and only drops the follow-ups.
func (s *Scheduler) deliver(parent, ctx context.Context, r *reminder) {
	b := r.booking
	msg := s.format(b, r.lead)

	err := retry.DoContext(ctx, s.cfg.Retry, func() error {
		attemptCtx, cancel := context.WithTimeout(parent, s.cfg.SendTimeout)
		defer cancel()

		sendErr := s.sink.Send(attemptCtx, b.UserID, msg)
		if sendErr != nil {
			s.logger.Warn("reminder attempt failed",
				logger.String("booking_id", b.ID),
				logger.Duration("lead", r.lead),
				logger.String("error", sendErr.Error()),
			)
		}
		return sendErr
	})

	s.mu.Lock()
	r.state = StateDone
	s.mu.Unlock()

	switch {
	case err != nil && parent.Err() != nil:
		// shutting down: leave the watermark alone so the next start retries
		s.logger.Warn("reminder delivery interrupted",
			logger.String("booking_id", b.ID),
			logger.Duration("lead", r.lead),
		)
		return
	case err != nil && ctx.Err() != nil:
		s.logger.Info("reminder delivery stopped, booking cancelled",
			logger.String("booking_id", b.ID),
			logger.Duration("lead", r.lead),
		)
	case err != nil:
		s.logger.Error("reminder delivery failed",
			logger.String("booking_id", b.ID),
			logger.Int64("user_id", b.UserID),
			logger.Duration("lead", r.lead),
			logger.String("error", fmt.Errorf("%w: %v", domain.ErrNotificationDeliveryFailed, err).Error()),
		)
	default:
		s.logger.Info("reminder sent",
			logger.String("booking_id", b.ID),
			logger.Int64("user_id", b.UserID),
			logger.Duration("lead", r.lead),
		)
		if s.observer != nil {
			s.observer.ReminderSent(context.WithoutCancel(ctx), b, r.lead)
		}
	}

	if err = s.source.MarkReminded(context.WithoutCancel(ctx), b.ID, r.lead); err != nil {
		s.logger.Warn("failed to store reminder watermark",
			logger.String("booking_id", b.ID),
			logger.String("error", err.Error()),
		)
	}
}

// resync arms reminders for bookings this process has not seen and drops
// reminders of bookings that are gone from the ledger.
func (s *Scheduler) resync(ctx context.Context) {
	listedAt := s.now()
	bookings, err := s.source.ListFutureBookings(ctx, listedAt)
	if err != nil {
		s.logger.Error("failed to list future bookings",
			logger.String("error", err.Error()),
		)
		return
	}

	seen := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		seen[b.ID] = struct{}{}
		s.ArrangeReminder(b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.bookings {
		if _, ok := seen[id]; ok {
			continue
		}
		// arranged after the listing started, the list may predate its commit
		if e.arranged.After(listedAt) {
			continue
		}
		inFlight := false
		for _, r := range e.reminders {
			s.cancelLocked(r)
			if r.state == StateFired {
				inFlight = true
			}
		}
		if !inFlight {
			delete(s.bookings, id)
		}
	}
}
