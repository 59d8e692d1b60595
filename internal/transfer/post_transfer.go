package transfer

import "time"

type PostCreation struct {
	Content  string  `json:"content"`
	MediaIDs []int64 `json:"media_ids"`
}

type MediaResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type PostResponse struct {
	ID             int64           `json:"id"`
	Content        string          `json:"content"`
	CreatedAt      time.Time       `json:"created_at"`
	AuthorUsername string          `json:"author_username"`
	Media          []MediaResponse `json:"media"`
}

type CommentCreation struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}
