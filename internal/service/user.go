package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type UserService struct {
	repo   ports.UserRepo
	admins ports.AdminResolver
	logger logger.Logger
}

func NewUserService(repo ports.UserRepo, admins ports.AdminResolver, logger logger.Logger) *UserService {
	return &UserService{repo: repo, admins: admins, logger: logger}
}

// Register creates the user on first contact. Known users keep their balance.
func (s *UserService) Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error) {
	if input.ID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", domain.ErrValidation)
	}

	user := &domain.User{
		ID:          input.ID,
		DisplayName: strings.TrimSpace(input.DisplayName),
		CreatedAt:   time.Now().UTC(),
	}

	user, err := s.repo.CreateUserIfAbsent(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Balance(ctx context.Context, id int64) (int, error) {
	return s.repo.GetBalance(ctx, id)
}

// AdjustCredits grants (delta > 0) or withdraws (delta < 0) visit credits.
// Only administrators may do it.
func (s *UserService) AdjustCredits(ctx context.Context, actorID, userID int64, delta int) (int, error) {
	if !s.admins.IsAdmin(actorID) {
		return 0, domain.ErrForbidden
	}
	if delta == 0 {
		return 0, fmt.Errorf("%w: delta must not be zero", domain.ErrValidation)
	}

	balance, err := s.repo.AdjustBalance(ctx, userID, delta)
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}

	s.logger.Info("balance adjusted",
		logger.Int64("user_id", userID),
		logger.Int64("actor_id", actorID),
		logger.Int("delta", delta),
		logger.Int("balance", balance),
	)

	return balance, nil
}

func (s *UserService) IsAdmin(userID int64) bool {
	return s.admins.IsAdmin(userID)
}

func (s *UserService) List(ctx context.Context, actorID int64) ([]*domain.User, error) {
	if !s.admins.IsAdmin(actorID) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}
