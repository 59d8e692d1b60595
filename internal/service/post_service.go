package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
	"github.com/jaydeadlondon/mini-twitter/internal/models"
	"github.com/jaydeadlondon/mini-twitter/internal/repository"
	"github.com/jaydeadlondon/mini-twitter/internal/storage"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
)

type PostService interface {
	CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (*transfer.PostResponse, error)
	Remove(ctx context.Context, userID, postID int64) error
	Like(ctx context.Context, userID, postID int64) (string, error)
	Unlike(ctx context.Context, userID, postID int64) (string, error)
	CreateComment(ctx context.Context, userID, postID int64, cc *transfer.CommentCreation) (*transfer.CommentResponse, error)
	ListComments(ctx context.Context, postID int64) ([]*transfer.CommentResponse, error)
}

// TxRunner runs fn inside one transactional scope. The SQL
// implementation wraps *sql.DB; tests substitute a passthrough.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type dbTxRunner struct {
	db *sql.DB
}

func (r dbTxRunner) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type postService struct {
	tx TxRunner
	u  repository.UserRepository
	pr repository.PostRepository
	cr repository.CommentRepository
	lr repository.LikeRepository
	mr repository.MediaRepository
	bs storage.BlobStore
}

func NewPostService(
	db *sql.DB,
	u repository.UserRepository,
	pr repository.PostRepository,
	cr repository.CommentRepository,
	lr repository.LikeRepository,
	mr repository.MediaRepository,
	bs storage.BlobStore) PostService {
	return NewPostServiceWithTx(dbTxRunner{db: db}, u, pr, cr, lr, mr, bs)
}

// NewPostServiceWithTx allows callers to supply the transaction runner
// directly, which tests use to avoid a live database.
func NewPostServiceWithTx(
	tx TxRunner,
	u repository.UserRepository,
	pr repository.PostRepository,
	cr repository.CommentRepository,
	lr repository.LikeRepository,
	mr repository.MediaRepository,
	bs storage.BlobStore) PostService {
	return &postService{
		tx: tx,
		u:  u,
		pr: pr,
		cr: cr,
		lr: lr,
		mr: mr,
		bs: bs,
	}
}

// CreatePost validates the requested media before touching anything:
// every id must resolve to an existing, still-unattached media record,
// otherwise nothing is written. The post insert and the media linking
// run in one transaction, so a concurrent reader never sees a post
// with partially linked media.
func (s *postService) CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (*transfer.PostResponse, error) {
	if strings.TrimSpace(pc.Content) == "" {
		err := apperrors.InvalidOperation("content cannot be empty")
		slog.Info(err.Error())
		return nil, err
	}

	var found []*models.Media
	if len(pc.MediaIDs) > 0 {
		var err error
		found, err = s.mr.ListUnattachedByIDs(ctx, pc.MediaIDs)
		if err != nil {
			return nil, err
		}

		if len(found) != len(pc.MediaIDs) {
			missing := missingMediaIDs(pc.MediaIDs, found)
			err = apperrors.NotFound("Media with IDs %v not found. Did you upload them first?", missing)
			slog.Info(err.Error())
			return nil, err
		}
	}

	author, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		err = apperrors.NotFound("User not found")
		slog.Info(err.Error())
		return nil, err
	}

	post := models.Post{
		UserID:  userID,
		Content: pc.Content,
	}

	err = s.tx.RunTx(ctx, func(tx *sql.Tx) error {
		id, err := s.pr.Create(ctx, tx, &post)
		if err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		post.ID = id

		for _, m := range found {
			if err := s.mr.AttachToPost(ctx, tx, m.ID, id); err != nil {
				return fmt.Errorf("error linking media %d: %w", m.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	media := make([]transfer.MediaResponse, 0, len(found))
	for _, m := range found {
		media = append(media, transfer.MediaResponse{ID: m.ID, URL: s.bs.URL(m.FileName)})
	}

	return &transfer.PostResponse{
		ID:             post.ID,
		Content:        post.Content,
		CreatedAt:      post.CreatedAt,
		AuthorUsername: author.Username,
		Media:          media,
	}, nil
}

func missingMediaIDs(requested []int64, found []*models.Media) []int64 {
	foundSet := make(map[int64]struct{}, len(found))
	for _, m := range found {
		foundSet[m.ID] = struct{}{}
	}

	var missing []int64
	for _, id := range requested {
		if _, ok := foundSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

// Remove deletes the post along with its comments and likes. Only the
// author may delete; media rows are detached, their files stay behind.
func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		err = apperrors.NotFound("Post not found")
		slog.Info(err.Error())
		return err
	}

	if post.UserID != userID {
		err = apperrors.Forbidden("Not enough permissions to delete this post")
		slog.Info(err.Error())
		return err
	}

	return s.pr.Remove(ctx, postID)
}

func (s *postService) Like(ctx context.Context, userID, postID int64) (string, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if post == nil {
		err = apperrors.NotFound("Post not found")
		slog.Info(err.Error())
		return "", err
	}

	exists, err := s.lr.Exists(ctx, userID, postID)
	if err != nil {
		return "", err
	}
	if exists {
		return "Already liked", nil
	}

	if err := s.lr.Create(ctx, userID, postID); err != nil {
		return "", err
	}
	return "Post liked", nil
}

// Unlike succeeds even when no like edge exists.
func (s *postService) Unlike(ctx context.Context, userID, postID int64) (string, error) {
	if err := s.lr.Remove(ctx, userID, postID); err != nil {
		return "", err
	}
	return "Post unliked", nil
}

func (s *postService) CreateComment(ctx context.Context, userID, postID int64, cc *transfer.CommentCreation) (*transfer.CommentResponse, error) {
	if strings.TrimSpace(cc.Content) == "" {
		err := apperrors.InvalidOperation("content cannot be empty")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		err = apperrors.NotFound("Post not found")
		slog.Info(err.Error())
		return nil, err
	}

	author, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		err = apperrors.NotFound("User not found")
		slog.Info(err.Error())
		return nil, err
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: cc.Content,
	}

	id, err := s.cr.Create(ctx, &comment)
	if err != nil {
		return nil, err
	}

	return &transfer.CommentResponse{
		ID:             id,
		Content:        comment.Content,
		AuthorUsername: author.Username,
		CreatedAt:      comment.CreatedAt,
	}, nil
}

func (s *postService) ListComments(ctx context.Context, postID int64) ([]*transfer.CommentResponse, error) {
	comments, err := s.cr.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := make([]*transfer.CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, &transfer.CommentResponse{
			ID:             c.ID,
			Content:        c.Content,
			AuthorUsername: c.AuthorUsername,
			CreatedAt:      c.CreatedAt,
		})
	}
	return resp, nil
}
