package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jaydeadlondon/mini-twitter/internal/models"
	"github.com/lib/pq"
)

type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) (int64, error)
	ListUnattachedByIDs(ctx context.Context, ids []int64) ([]*models.Media, error)
	AttachToPost(ctx context.Context, tx *sql.Tx, mediaID, postID int64) error
	ListByPostIDs(ctx context.Context, postIDs []int64) ([]*models.Media, error)
}

type mediaRepository struct {
	db *sql.DB
}

func NewMediaRepository(db *sql.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) (int64, error) {
	query := `
		INSERT INTO media (file_path, file_name)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, media.FilePath, media.FileName).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

// ListUnattachedByIDs returns only media that exist and have no owning
// post yet. Callers diff the result against the requested ids to find
// what is missing or already attached.
func (r *mediaRepository) ListUnattachedByIDs(ctx context.Context, ids []int64) ([]*models.Media, error) {
	query := `
		SELECT id, post_id, file_path, file_name, created_at
		FROM media
		WHERE id = ANY($1) AND post_id IS NULL
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanMedia(rows)
}

// AttachToPost sets post_id exactly once; the post_id IS NULL guard
// makes re-linking a no-op and reassignment impossible.
func (r *mediaRepository) AttachToPost(ctx context.Context, tx *sql.Tx, mediaID, postID int64) error {
	query := `
		UPDATE media
		SET post_id = $1
		WHERE id = $2 AND (post_id IS NULL OR post_id = $1)
	`

	var result sql.Result
	var err error

	if tx != nil {
		result, err = tx.ExecContext(ctx, query, postID, mediaID)
	} else {
		result, err = r.db.ExecContext(ctx, query, postID, mediaID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected == 0 {
		return errors.New("media is attached to another post")
	}
	return nil
}

func (r *mediaRepository) ListByPostIDs(ctx context.Context, postIDs []int64) ([]*models.Media, error) {
	query := `
		SELECT id, post_id, file_path, file_name, created_at
		FROM media
		WHERE post_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanMedia(rows)
}

func scanMedia(rows *sql.Rows) ([]*models.Media, error) {
	var medias []*models.Media
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.PostID, &m.FilePath, &m.FileName, &m.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		medias = append(medias, &m)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return medias, nil
}
