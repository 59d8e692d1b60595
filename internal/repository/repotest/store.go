// Package repotest provides an in-memory stand-in for the Postgres
// repositories, so service and handler behavior can be exercised
// without a database. Cross-table behavior (cascading deletes, media
// linkage) is emulated the way the schema constraints behave.
package repotest

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/jaydeadlondon/mini-twitter/internal/models"
	"github.com/jaydeadlondon/mini-twitter/internal/repository"
)

type Store struct {
	mu sync.Mutex

	Users    map[int64]*models.User
	Follows  map[[2]int64]time.Time
	Posts    map[int64]*models.Post
	Comments map[int64]*models.Comment
	Likes    map[[2]int64]time.Time
	Media    map[int64]*models.Media

	nextID int64
	now    time.Time
}

func NewStore() *Store {
	return &Store{
		Users:    make(map[int64]*models.User),
		Follows:  make(map[[2]int64]time.Time),
		Posts:    make(map[int64]*models.Post),
		Comments: make(map[int64]*models.Comment),
		Likes:    make(map[[2]int64]time.Time),
		Media:    make(map[int64]*models.Media),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *Store) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

// tick advances the fake clock so successive rows get distinct
// creation timestamps.
func (s *Store) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

// SeedUser registers a user directly in the store.
func (s *Store) SeedUser(username string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextIDLocked()
	user := &models.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    s.tick(),
	}
	s.Users[id] = user
	return user
}

// SeedMedia stages an unattached media record.
func (s *Store) SeedMedia(filename string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextIDLocked()
	s.Media[id] = &models.Media{
		ID:        id,
		FilePath:  "uploaded_files/" + filename,
		FileName:  filename,
		CreatedAt: s.tick(),
	}
	return id
}

// Repository views over the shared store.

func (s *Store) UserRepo() repository.UserRepository       { return userRepo{s} }
func (s *Store) FollowRepo() repository.FollowRepository   { return followRepo{s} }
func (s *Store) PostRepo() repository.PostRepository       { return postRepo{s} }
func (s *Store) CommentRepo() repository.CommentRepository { return commentRepo{s} }
func (s *Store) LikeRepo() repository.LikeRepository       { return likeRepo{s} }
func (s *Store) MediaRepo() repository.MediaRepository     { return mediaRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.Users[id]
	if !ok {
		return nil, false, nil
	}
	u := *user
	return &u, true, nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.Users {
		if user.Username == username {
			u := *user
			return &u, true, nil
		}
	}
	return nil, false, nil
}

func (r userRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.Users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := r.s.nextIDLocked()
	u := *user
	u.ID = id
	u.CreatedAt = r.s.tick()
	r.s.Users[id] = &u
	return id, nil
}

func (r userRepo) GetUsernames(ctx context.Context, ids []int64) (map[int64]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	usernames := make(map[int64]string)
	for _, id := range ids {
		if user, ok := r.s.Users[id]; ok {
			usernames[id] = user.Username
		}
	}
	return usernames, nil
}

type followRepo struct{ s *Store }

func (r followRepo) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.Follows[[2]int64{followerID, followedID}]
	return ok, nil
}

func (r followRepo) Create(ctx context.Context, followerID, followedID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Follows[[2]int64{followerID, followedID}] = r.s.tick()
	return nil
}

func (r followRepo) GetFollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int64
	for edge := range r.s.Follows {
		if edge[0] == followerID {
			ids = append(ids, edge[1])
		}
	}
	return ids, nil
}

type postRepo struct{ s *Store }

func (r postRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := r.s.nextIDLocked()
	p := *post
	p.ID = id
	p.CreatedAt = r.s.tick()
	r.s.Posts[id] = &p
	post.CreatedAt = p.CreatedAt
	return id, nil
}

func (r postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post, ok := r.s.Posts[id]
	if !ok {
		return nil, nil
	}
	p := *post
	return &p, nil
}

func (r postRepo) ListByAuthorIDs(ctx context.Context, authorIDs []int64, limit int) ([]*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	scope := make(map[int64]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		scope[id] = struct{}{}
	}

	var posts []*models.Post
	for _, post := range r.s.Posts {
		if _, ok := scope[post.UserID]; ok {
			posts = append(posts, post)
		}
	}
	return r.s.sortHydrateTruncateLocked(posts, limit), nil
}

func (r postRepo) Search(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var posts []*models.Post
	for _, post := range r.s.Posts {
		if strings.Contains(strings.ToLower(post.Content), strings.ToLower(query)) {
			posts = append(posts, post)
		}
	}
	return r.s.sortHydrateTruncateLocked(posts, limit), nil
}

func (s *Store) sortHydrateTruncateLocked(posts []*models.Post, limit int) []*models.Post {
	out := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		p := *post
		if user, ok := s.Users[p.UserID]; ok {
			p.AuthorUsername = user.Username
		}
		out = append(out, &p)
	}

	// Newest first, id as tiebreak, matching the SQL ordering.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			if b.CreatedAt.After(a.CreatedAt) || (b.CreatedAt.Equal(a.CreatedAt) && b.ID > a.ID) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r postRepo) Remove(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.Posts, id)
	for cid, comment := range r.s.Comments {
		if comment.PostID == id {
			delete(r.s.Comments, cid)
		}
	}
	for edge := range r.s.Likes {
		if edge[1] == id {
			delete(r.s.Likes, edge)
		}
	}
	for _, m := range r.s.Media {
		if m.PostID.Valid && m.PostID.Int64 == id {
			m.PostID = sql.NullInt64{}
		}
	}
	return nil
}

type commentRepo struct{ s *Store }

func (r commentRepo) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := r.s.nextIDLocked()
	c := *comment
	c.ID = id
	c.CreatedAt = r.s.tick()
	r.s.Comments[id] = &c
	comment.CreatedAt = c.CreatedAt
	return id, nil
}

func (r commentRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var comments []*models.Comment
	for _, comment := range r.s.Comments {
		if comment.PostID == postID {
			c := *comment
			if user, ok := r.s.Users[c.UserID]; ok {
				c.AuthorUsername = user.Username
			}
			comments = append(comments, &c)
		}
	}

	for i := 0; i < len(comments); i++ {
		for j := i + 1; j < len(comments); j++ {
			if comments[j].CreatedAt.Before(comments[i].CreatedAt) {
				comments[i], comments[j] = comments[j], comments[i]
			}
		}
	}
	return comments, nil
}

type likeRepo struct{ s *Store }

func (r likeRepo) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.Likes[[2]int64{userID, postID}]
	return ok, nil
}

func (r likeRepo) Create(ctx context.Context, userID, postID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Likes[[2]int64{userID, postID}] = r.s.tick()
	return nil
}

func (r likeRepo) Remove(ctx context.Context, userID, postID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Likes, [2]int64{userID, postID})
	return nil
}

type mediaRepo struct{ s *Store }

func (r mediaRepo) Create(ctx context.Context, media *models.Media) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := r.s.nextIDLocked()
	m := *media
	m.ID = id
	m.CreatedAt = r.s.tick()
	r.s.Media[id] = &m
	return id, nil
}

func (r mediaRepo) ListUnattachedByIDs(ctx context.Context, ids []int64) ([]*models.Media, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var medias []*models.Media
	for _, id := range ids {
		if m, ok := r.s.Media[id]; ok && !m.PostID.Valid {
			copied := *m
			medias = append(medias, &copied)
		}
	}
	return medias, nil
}

func (r mediaRepo) AttachToPost(ctx context.Context, tx *sql.Tx, mediaID, postID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.s.Media[mediaID]
	if !m.PostID.Valid {
		m.PostID = sql.NullInt64{Int64: postID, Valid: true}
	}
	return nil
}

func (r mediaRepo) ListByPostIDs(ctx context.Context, postIDs []int64) ([]*models.Media, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	scope := make(map[int64]struct{}, len(postIDs))
	for _, id := range postIDs {
		scope[id] = struct{}{}
	}

	var medias []*models.Media
	for _, m := range r.s.Media {
		if m.PostID.Valid {
			if _, ok := scope[m.PostID.Int64]; ok {
				copied := *m
				medias = append(medias, &copied)
			}
		}
	}
	return medias, nil
}

// PassthroughTx satisfies the post service's TxRunner without a
// database: the callback runs outside any transaction.
type PassthroughTx struct{}

func (PassthroughTx) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

// Blob records saved blobs and derives static URLs.
type Blob struct {
	Saved map[string][]byte
}

func NewBlob() *Blob {
	return &Blob{Saved: make(map[string][]byte)}
}

func (b *Blob) Save(ctx context.Context, filename string, data []byte, contentType string) error {
	b.Saved[filename] = data
	return nil
}

func (b *Blob) URL(filename string) string {
	return "/static/" + filename
}
