package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jaydeadlondon/mini-twitter/internal/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error)
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, comment.PostID, comment.UserID, comment.Content).Scan(&id, &comment.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

// ListByPostID returns the post's comments ascending by creation time.
func (r *commentRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at, c.id
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Content, &comment.CreatedAt, &comment.AuthorUsername)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		comments = append(comments, &comment)
	}
	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return comments, nil
}
