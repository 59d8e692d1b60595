package repository

import (
	"context"
	"database/sql"
	"log/slog"
)

type FollowRepository interface {
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	Create(ctx context.Context, followerID, followedID int64) error
	GetFollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
}

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) FollowRepository {
	return &followRepository{db: db}
}

// Exists is a single indexed lookup on the follows primary key.
func (r *followRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := "SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, followerID, followedID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}

func (r *followRepository) Create(ctx context.Context, followerID, followedID int64) error {
	query := "INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2)"

	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	query := "SELECT followed_id FROM follows WHERE follower_id = $1"

	rows, err := r.db.QueryContext(ctx, query, followerID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return ids, nil
}
