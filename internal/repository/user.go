package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type UserRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewUserRepo(db *dbpg.DB) *UserRepository {
	return &UserRepository{
		db:       db,
		strategy: defaultStrategy(),
	}
}

// CreateUserIfAbsent keeps the stored balance of a known user and only
// refreshes a non-empty display name.
func (r *UserRepository) CreateUserIfAbsent(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (id, display_name, balance, created_at)
			  VALUES ($1, $2, 0, $3)
			  ON CONFLICT (id) DO UPDATE
			  SET display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), users.display_name)
			  RETURNING id, display_name, balance, created_at`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, u.ID, u.DisplayName, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	var res domain.User
	if err = row.Scan(&res.ID, &res.DisplayName, &res.Balance, &res.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &res, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, display_name, balance, created_at
			  FROM users
			  WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var u domain.User
	if err = row.Scan(&u.ID, &u.DisplayName, &u.Balance, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) GetBalance(ctx context.Context, id int64) (int, error) {
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, `SELECT balance FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	var balance int
	if err = row.Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("scan balance: %w", err)
	}

	return balance, nil
}

// AdjustBalance is a single conditional UPDATE, so it is not retried.
func (r *UserRepository) AdjustBalance(ctx context.Context, id int64, delta int) (int, error) {
	query := `UPDATE users
			  SET balance = balance + $2
			  WHERE id = $1 AND balance + $2 >= 0
			  RETURNING balance`

	var balance int
	err := r.db.Master.QueryRowContext(ctx, query, id, delta).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}

	// no row updated: either unknown user or the balance would go negative
	var exists bool
	if err = r.db.Master.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).
		Scan(&exists); err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return 0, domain.ErrUserNotFound
	}

	return 0, domain.ErrNegativeBalance
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, display_name, balance, created_at
			  FROM users
			  ORDER BY created_at`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var res []*domain.User
	for rows.Next() {
		var u domain.User
		if err = rows.Scan(&u.ID, &u.DisplayName, &u.Balance, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		res = append(res, &u)
	}

	return res, rows.Err()
}
