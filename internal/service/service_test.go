package service

import (
	"github.com/jaydeadlondon/mini-twitter/internal/models"
	"github.com/jaydeadlondon/mini-twitter/internal/repository/repotest"
)

func newFakeStore() *repotest.Store {
	return repotest.NewStore()
}

func newTestServices(store *repotest.Store) (PostService, FeedService, FollowService, AuthService, UserService, MediaService) {
	blob := repotest.NewBlob()
	postSvc := NewPostServiceWithTx(
		repotest.PassthroughTx{},
		store.UserRepo(),
		store.PostRepo(),
		store.CommentRepo(),
		store.LikeRepo(),
		store.MediaRepo(),
		blob,
	)
	feedSvc := NewFeedService(store.FollowRepo(), store.PostRepo(), store.MediaRepo(), blob)
	followSvc := NewFollowService(store.UserRepo(), store.FollowRepo())
	authSvc := NewAuthService(store.UserRepo())
	userSvc := NewUserService(store.UserRepo())
	mediaSvc := NewMediaService(store.MediaRepo(), blob)
	return postSvc, feedSvc, followSvc, authSvc, userSvc, mediaSvc
}

func seedUser(store *repotest.Store, username string) *models.User {
	return store.SeedUser(username)
}

func seedMedia(store *repotest.Store, filename string) int64 {
	return store.SeedMedia(filename)
}
