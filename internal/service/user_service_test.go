package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/notification"
	"backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest(t *testing.T) (UserService, *testEnv) {
	t.Helper()

	env := newTestEnv(t)
	tokens := repository.NewRefreshTokenRepository(env.db)
	notifier := notification.NewNotifier(env.sender, env.users)
	return NewUserService(env.users, tokens, notifier), env
}

func TestCreateUserValidatesRoleAndUniqueness(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "secret123",
		Role:     model.RoleEmployee,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, model.RoleEmployee, created.Role)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
		Role:     model.RoleEmployee,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     model.RoleEmployee,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginAndRefreshRotation(t *testing.T) {
	svc, env := newUserServiceForTest(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     model.RoleEmployee,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginUserRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Error(t, err)

	tokens, err := svc.Login(ctx, LoginUserRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)

	rotated, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old refresh token was consumed by the rotation.
	_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.Error(t, err)

	// Only the rotated token remains stored.
	var count int64
	require.NoError(t, env.db.Model(&model.RefreshToken{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
