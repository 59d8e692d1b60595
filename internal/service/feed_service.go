package service

import (
	"context"

	"github.com/jaydeadlondon/mini-twitter/internal/models"
	"github.com/jaydeadlondon/mini-twitter/internal/repository"
	"github.com/jaydeadlondon/mini-twitter/internal/storage"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

type FeedService interface {
	GetFeed(ctx context.Context, userID int64, limit int) ([]*transfer.PostResponse, error)
	SearchPosts(ctx context.Context, query string, limit int) ([]*transfer.PostResponse, error)
}

type feedService struct {
	f  repository.FollowRepository
	pr repository.PostRepository
	mr repository.MediaRepository
	bs storage.BlobStore
}

func NewFeedService(
	f repository.FollowRepository,
	pr repository.PostRepository,
	mr repository.MediaRepository,
	bs storage.BlobStore) FeedService {
	return &feedService{
		f:  f,
		pr: pr,
		mr: mr,
		bs: bs,
	}
}

// GetFeed returns posts from followed authors plus the user's own,
// newest first. The feed scope is computed per request; there is no
// precomputed timeline at this scale.
func (s *feedService) GetFeed(ctx context.Context, userID int64, limit int) ([]*transfer.PostResponse, error) {
	followingIDs, err := s.f.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	scope := append(followingIDs, userID)

	posts, err := s.pr.ListByAuthorIDs(ctx, scope, clampLimit(limit))
	if err != nil {
		return nil, err
	}

	return s.hydrate(ctx, posts)
}

func (s *feedService) SearchPosts(ctx context.Context, query string, limit int) ([]*transfer.PostResponse, error) {
	posts, err := s.pr.Search(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, err
	}

	return s.hydrate(ctx, posts)
}

// hydrate attaches media (id + access URL) to the already
// author-joined posts. One media query covers the whole page.
func (s *feedService) hydrate(ctx context.Context, posts []*models.Post) ([]*transfer.PostResponse, error) {
	resp := make([]*transfer.PostResponse, 0, len(posts))
	if len(posts) == 0 {
		return resp, nil
	}

	postIDs := make([]int64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	medias, err := s.mr.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	mediaByPost := make(map[int64][]transfer.MediaResponse)
	for _, m := range medias {
		if !m.PostID.Valid {
			continue
		}
		mediaByPost[m.PostID.Int64] = append(mediaByPost[m.PostID.Int64], transfer.MediaResponse{
			ID:  m.ID,
			URL: s.bs.URL(m.FileName),
		})
	}

	for _, p := range posts {
		media := mediaByPost[p.ID]
		if media == nil {
			media = []transfer.MediaResponse{}
		}
		resp = append(resp, &transfer.PostResponse{
			ID:             p.ID,
			Content:        p.Content,
			CreatedAt:      p.CreatedAt,
			AuthorUsername: p.AuthorUsername,
			Media:          media,
		})
	}
	return resp, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		return MaxFeedLimit
	}
	return limit
}
