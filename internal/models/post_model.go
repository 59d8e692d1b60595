package models

import (
	"database/sql"
	"time"
)

type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Populated by list queries that join the users table.
	AuthorUsername string `db:"-" json:"author_username,omitempty"`
}

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	AuthorUsername string `db:"-" json:"author_username,omitempty"`
}

type Like struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Media starts out unattached; PostID is set exactly once when the media
// is linked to a post and is never reassigned.
type Media struct {
	ID        int64         `db:"id"`
	PostID    sql.NullInt64 `db:"post_id"`
	FilePath  string        `db:"file_path"`
	FileName  string        `db:"file_name"`
	CreatedAt time.Time     `db:"created_at"`
}
