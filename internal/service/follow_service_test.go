package service

import (
	"context"
	"testing"

	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	store := newFakeStore()
	_, _, followSvc, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	seedUser(store, "bob")

	message, err := followSvc.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Successfully followed bob", message)

	message, err = followSvc.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Already following bob", message)

	assert.Len(t, store.Follows, 1)
}

func TestFollowSelfFails(t *testing.T) {
	store := newFakeStore()
	_, _, followSvc, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	_, err := followSvc.Follow(context.Background(), alice.ID, "alice")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidOperation))
	assert.Empty(t, store.Follows)
}

func TestFollowUnknownTargetFails(t *testing.T) {
	store := newFakeStore()
	_, _, followSvc, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	_, err := followSvc.Follow(context.Background(), alice.ID, "nobody")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
