package repository

import (
	"context"
	"database/sql"
	"log/slog"
)

type LikeRepository interface {
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	Create(ctx context.Context, userID, postID int64) error
	Remove(ctx context.Context, userID, postID int64) error
}

type likeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	query := "SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, userID, postID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}

func (r *likeRepository) Create(ctx context.Context, userID, postID int64) error {
	query := "INSERT INTO likes (user_id, post_id) VALUES ($1, $2)"

	_, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// Remove deletes the like edge if present; deleting a missing edge
// affects zero rows and is not an error.
func (r *likeRepository) Remove(ctx context.Context, userID, postID int64) error {
	query := "DELETE FROM likes WHERE user_id = $1 AND post_id = $2"

	_, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
