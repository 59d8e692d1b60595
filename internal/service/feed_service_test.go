package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedFollowedAuthor(t *testing.T) {
	store := newFakeStore()
	postSvc, feedSvc, followSvc, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")

	_, err := followSvc.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)

	_, err = postSvc.CreatePost(ctx, bob.ID, &transfer.PostCreation{Content: "hello"})
	require.NoError(t, err)

	feed, err := feedSvc.GetFeed(ctx, alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "hello", feed[0].Content)
	assert.Equal(t, "bob", feed[0].AuthorUsername)
	assert.Empty(t, feed[0].Media)
}

func TestFeedWithoutFollowsIsSelfOnly(t *testing.T) {
	store := newFakeStore()
	postSvc, feedSvc, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")

	_, err := postSvc.CreatePost(ctx, bob.ID, &transfer.PostCreation{Content: "not for alice"})
	require.NoError(t, err)
	_, err = postSvc.CreatePost(ctx, alice.ID, &transfer.PostCreation{Content: "older"})
	require.NoError(t, err)
	_, err = postSvc.CreatePost(ctx, alice.ID, &transfer.PostCreation{Content: "newer"})
	require.NoError(t, err)

	feed, err := feedSvc.GetFeed(ctx, alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "newer", feed[0].Content)
	assert.Equal(t, "older", feed[1].Content)
}

func TestFeedTruncatesToLimit(t *testing.T) {
	store := newFakeStore()
	postSvc, feedSvc, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	for i := 0; i < 5; i++ {
		_, err := postSvc.CreatePost(ctx, alice.ID, &transfer.PostCreation{Content: fmt.Sprintf("post %d", i)})
		require.NoError(t, err)
	}

	feed, err := feedSvc.GetFeed(ctx, alice.ID, 3)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "post 4", feed[0].Content)
}

func TestFeedHydratesMedia(t *testing.T) {
	store := newFakeStore()
	postSvc, feedSvc, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	mediaID := seedMedia(store, "dog.png")

	_, err := postSvc.CreatePost(ctx, alice.ID, &transfer.PostCreation{
		Content:  "with media",
		MediaIDs: []int64{mediaID},
	})
	require.NoError(t, err)

	feed, err := feedSvc.GetFeed(ctx, alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Len(t, feed[0].Media, 1)
	assert.Equal(t, mediaID, feed[0].Media[0].ID)
	assert.Equal(t, "/static/dog.png", feed[0].Media[0].URL)
}

func TestSearchFindsSubstring(t *testing.T) {
	store := newFakeStore()
	postSvc, feedSvc, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	for _, content := range []string{"go is fun", "rust is fine", "coffee time"} {
		_, err := postSvc.CreatePost(ctx, alice.ID, &transfer.PostCreation{Content: content})
		require.NoError(t, err)
	}

	results, err := feedSvc.SearchPosts(ctx, "COFFEE", 20)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "coffee time", results[0].Content)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultFeedLimit, clampLimit(0))
	assert.Equal(t, DefaultFeedLimit, clampLimit(-5))
	assert.Equal(t, 30, clampLimit(30))
	assert.Equal(t, MaxFeedLimit, clampLimit(5000))
}
