package service

import (
	"context"
	"errors"
	"testing"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *mocks.MockUserRepo, *mocks.MockAdminResolver) {
	repo := mocks.NewMockUserRepo(t)
	admins := mocks.NewMockAdminResolver(t)
	return NewUserService(repo, admins, newTestLogger(t)), repo, admins
}

func TestUserService_Register_Success(t *testing.T) {
	svc, repo, _ := newUserService(t)

	repo.EXPECT().CreateUserIfAbsent(mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 42 && u.DisplayName == "Alice"
	})).Return(&domain.User{ID: 42, DisplayName: "Alice", Balance: 3}, nil)

	user, err := svc.Register(context.Background(), domain.RegisterUserInput{ID: 42, DisplayName: "  Alice "})

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, 3, user.Balance)
}

func TestUserService_Register_InvalidID(t *testing.T) {
	svc := NewUserService(nil, nil, newTestLogger(t))

	_, err := svc.Register(context.Background(), domain.RegisterUserInput{ID: 0})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_Register_RepoError(t *testing.T) {
	svc, repo, _ := newUserService(t)

	repoErr := errors.New("db error")
	repo.EXPECT().CreateUserIfAbsent(mock.Anything, mock.Anything).Return(nil, repoErr)

	_, err := svc.Register(context.Background(), domain.RegisterUserInput{ID: 42})

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}

func TestUserService_AdjustCredits(t *testing.T) {
	svc, repo, admins := newUserService(t)

	admins.EXPECT().IsAdmin(int64(1)).Return(true)
	repo.EXPECT().AdjustBalance(mock.Anything, int64(42), 5).Return(5, nil)

	balance, err := svc.AdjustCredits(context.Background(), 1, 42, 5)

	require.NoError(t, err)
	assert.Equal(t, 5, balance)
}

func TestUserService_AdjustCredits_Errors(t *testing.T) {
	t.Run("not an admin", func(t *testing.T) {
		svc, _, admins := newUserService(t)
		admins.EXPECT().IsAdmin(int64(42)).Return(false)

		_, err := svc.AdjustCredits(context.Background(), 42, 42, 5)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("zero delta", func(t *testing.T) {
		svc, _, admins := newUserService(t)
		admins.EXPECT().IsAdmin(int64(1)).Return(true)

		_, err := svc.AdjustCredits(context.Background(), 1, 42, 0)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("would go negative", func(t *testing.T) {
		svc, repo, admins := newUserService(t)
		admins.EXPECT().IsAdmin(int64(1)).Return(true)
		repo.EXPECT().AdjustBalance(mock.Anything, int64(42), -2).Return(0, domain.ErrNegativeBalance)

		_, err := svc.AdjustCredits(context.Background(), 1, 42, -2)

		assert.ErrorIs(t, err, domain.ErrNegativeBalance)
	})
}

func TestUserService_List_AdminOnly(t *testing.T) {
	svc, repo, admins := newUserService(t)

	admins.EXPECT().IsAdmin(int64(42)).Return(false)
	admins.EXPECT().IsAdmin(int64(1)).Return(true)
	repo.EXPECT().List(mock.Anything).Return([]*domain.User{{ID: 42}}, nil)

	_, err := svc.List(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	users, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
