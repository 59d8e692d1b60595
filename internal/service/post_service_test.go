package service

import (
	"context"
	"testing"

	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostWithoutMedia(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	post, err := postSvc.CreatePost(context.Background(), alice.ID, &transfer.PostCreation{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)
	assert.Equal(t, "alice", post.AuthorUsername)
	assert.Empty(t, post.Media)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostEmptyContentFails(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	_, err := postSvc.CreatePost(context.Background(), alice.ID, &transfer.PostCreation{Content: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidOperation))
	assert.Empty(t, store.Posts)
}

func TestCreatePostLinksMedia(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	mediaID := seedMedia(store, "cat.jpg")

	post, err := postSvc.CreatePost(ctx, alice.ID, &transfer.PostCreation{
		Content:  "look at my cat",
		MediaIDs: []int64{mediaID},
	})
	require.NoError(t, err)
	require.Len(t, post.Media, 1)
	assert.Equal(t, mediaID, post.Media[0].ID)
	assert.Equal(t, "/static/cat.jpg", post.Media[0].URL)

	m := store.Media[mediaID]
	require.True(t, m.PostID.Valid)
	assert.Equal(t, post.ID, m.PostID.Int64)
}

func TestCreatePostMissingMediaFails(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")
	mediaID := seedMedia(store, "cat.jpg")

	_, err := postSvc.CreatePost(context.Background(), alice.ID, &transfer.PostCreation{
		Content:  "broken",
		MediaIDs: []int64{mediaID, 9999},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Contains(t, err.Error(), "9999")

	// Nothing was written: no post, and the valid media stays unattached.
	assert.Empty(t, store.Posts)
	assert.False(t, store.Media[mediaID].PostID.Valid)
}

func TestCreatePostAttachedMediaFails(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	mediaID := seedMedia(store, "cat.jpg")

	_, err := postSvc.CreatePost(ctx, alice.ID, &transfer.PostCreation{
		Content:  "first",
		MediaIDs: []int64{mediaID},
	})
	require.NoError(t, err)

	// The same media cannot back a second post.
	_, err = postSvc.CreatePost(ctx, alice.ID, &transfer.PostCreation{
		Content:  "second",
		MediaIDs: []int64{mediaID},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Len(t, store.Posts, 1)
}

func TestLikeIsIdempotent(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")

	post, err := postSvc.CreatePost(ctx, bob.ID, &transfer.PostCreation{Content: "hi"})
	require.NoError(t, err)

	message, err := postSvc.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Post liked", message)

	message, err = postSvc.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Already liked", message)

	assert.Len(t, store.Likes, 1)
}

func TestLikeMissingPostFails(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	_, err := postSvc.Like(context.Background(), alice.ID, 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUnlikeNeverLikedIsNoOp(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	message, err := postSvc.Unlike(context.Background(), alice.ID, 404)
	require.NoError(t, err)
	assert.Equal(t, "Post unliked", message)
}

func TestRemovePostByNonAuthorFails(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")

	post, err := postSvc.CreatePost(ctx, bob.ID, &transfer.PostCreation{Content: "mine"})
	require.NoError(t, err)

	err = postSvc.Remove(ctx, alice.ID, post.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	assert.Len(t, store.Posts, 1)
}

func TestRemovePostCascades(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")

	post, err := postSvc.CreatePost(ctx, bob.ID, &transfer.PostCreation{Content: "mine"})
	require.NoError(t, err)

	_, err = postSvc.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	_, err = postSvc.CreateComment(ctx, alice.ID, post.ID, &transfer.CommentCreation{Content: "nice"})
	require.NoError(t, err)

	err = postSvc.Remove(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	assert.Empty(t, store.Posts)
	assert.Empty(t, store.Comments)
	assert.Empty(t, store.Likes)
}

func TestRemoveMissingPostFails(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	err := postSvc.Remove(context.Background(), alice.ID, 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCommentOnMissingPostFails(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)

	alice := seedUser(store, "alice")

	_, err := postSvc.CreateComment(context.Background(), alice.ID, 404, &transfer.CommentCreation{Content: "hi"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListCommentsAscending(t *testing.T) {
	store := newFakeStore()
	postSvc, _, _, _, _, _ := newTestServices(store)
	ctx := context.Background()

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")

	post, err := postSvc.CreatePost(ctx, bob.ID, &transfer.PostCreation{Content: "thread"})
	require.NoError(t, err)

	_, err = postSvc.CreateComment(ctx, alice.ID, post.ID, &transfer.CommentCreation{Content: "first"})
	require.NoError(t, err)
	_, err = postSvc.CreateComment(ctx, bob.ID, post.ID, &transfer.CommentCreation{Content: "second"})
	require.NoError(t, err)

	comments, err := postSvc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "alice", comments[0].AuthorUsername)
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, "bob", comments[1].AuthorUsername)
}
