package service

import (
	"context"
	"testing"

	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	_, _, _, authSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	user, err := authSvc.Register(ctx, &transfer.UserRegistration{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Bio:      "hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hi there", user.Bio)
	assert.NotZero(t, user.ID)

	logged, err := authSvc.Login(ctx, &transfer.UserLogin{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateFails(t *testing.T) {
	store := newFakeStore()
	_, _, _, authSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, &transfer.UserRegistration{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	// Same username.
	_, err = authSvc.Register(ctx, &transfer.UserRegistration{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// Same email.
	_, err = authSvc.Register(ctx, &transfer.UserRegistration{
		Username: "alice2", Email: "alice@example.com", Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestLoginWrongPasswordFails(t *testing.T) {
	store := newFakeStore()
	_, _, _, authSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, &transfer.UserRegistration{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, &transfer.UserLogin{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	_, err = authSvc.Login(ctx, &transfer.UserLogin{Username: "nobody", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestGetUserInfo(t *testing.T) {
	store := newFakeStore()
	_, _, _, _, userSvc, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	info, err := userSvc.GetUserInfo(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)

	_, err = userSvc.GetUserInfo(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
