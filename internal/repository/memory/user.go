package memory

import (
	"context"
	"sort"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

type UserRepository struct {
	s *Store
}

func NewUserRepo(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) CreateUserIfAbsent(_ context.Context, u *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.users[u.ID]; ok {
		if u.DisplayName != "" {
			existing.DisplayName = u.DisplayName
		}
		return copyUser(existing), nil
	}

	created := &domain.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.s.users[u.ID] = created

	return copyUser(created), nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) GetBalance(_ context.Context, id int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return u.Balance, nil
}

func (r *UserRepository) AdjustBalance(_ context.Context, id int64, delta int) (int, error) {
	unlock := r.s.lockUser(id)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if u.Balance+delta < 0 {
		return 0, domain.ErrNegativeBalance
	}

	u.Balance += delta
	return u.Balance, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		res = append(res, copyUser(u))
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})

	return res, nil
}
