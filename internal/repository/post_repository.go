package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jaydeadlondon/mini-twitter/internal/models"
	"github.com/lib/pq"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	ListByAuthorIDs(ctx context.Context, authorIDs []int64, limit int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit int) ([]*models.Post, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.UserID, post.Content).Scan(&id, &post.CreatedAt)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.UserID, post.Content).Scan(&id, &post.CreatedAt)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT id, user_id, content, created_at FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var post models.Post
	err := row.Scan(&post.ID, &post.UserID, &post.Content, &post.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &post, nil
}

// ListByAuthorIDs returns posts from the given authors, newest first,
// ties broken by id so the ordering is stable.
func (r *postRepository) ListByAuthorIDs(ctx context.Context, authorIDs []int64, limit int) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.user_id, p.content, p.created_at, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ANY($1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(authorIDs), limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepository) Search(ctx context.Context, search string, limit int) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.user_id, p.content, p.created_at, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.content ILIKE '%' || $1 || '%'
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, search, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]*models.Post, error) {
	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(&post.ID, &post.UserID, &post.Content, &post.CreatedAt, &post.AuthorUsername)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

// Remove deletes the post row; comments and likes go with it through
// the ON DELETE CASCADE constraints, media rows are detached by
// ON DELETE SET NULL. Media files on disk are left in place.
func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
