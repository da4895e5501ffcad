package ports

import (
	"context"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
)

type UserRepo interface {
	CreateUserIfAbsent(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetBalance(ctx context.Context, id int64) (int, error)
	AdjustBalance(ctx context.Context, id int64, delta int) (int, error)
	List(ctx context.Context) ([]*domain.User, error)
}
