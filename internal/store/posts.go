package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"grove/internal/models"

	"gorm.io/gorm"
)

// MaxListLimit bounds a single page so a client cannot drag the whole
// table through one query.
const MaxListLimit = 100

// Cursor marks the last-seen row of a page. Ordering is
// (created_at DESC, id DESC); the id breaks timestamp ties so a page
// boundary can never duplicate or skip a row.
type Cursor struct {
	CreatedAt time.Time
	ID        uint
}

func (c Cursor) Encode() string {
	// Nanoseconds so the timestamp round-trips exactly; truncating
	// would break the equality arm of the page filter.
	raw := fmt.Sprintf("%d:%d", c.CreatedAt.UnixNano(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeCursor(s string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid cursor %q", s)
	}
	nsec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor id: %w", err)
	}
	return Cursor{CreatedAt: time.Unix(0, nsec).UTC(), ID: uint(id)}, nil
}

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List returns one page of posts, newest first. It over-fetches one row
// beyond the limit to learn whether another page exists without a
// separate COUNT query.
func (s *PostStore) List(ctx context.Context, limit int, cursor *Cursor) ([]models.Post, bool, error) {
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if limit < 1 {
		limit = 1
	}

	q := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit + 1)
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, false, err
	}

	hasMore := len(posts) == limit+1
	if hasMore {
		posts = posts[:limit]
	}
	return posts, hasMore, nil
}

// Update writes title and text only. Points and timestamps are managed
// elsewhere and must not be clobbered by an edit.
func (s *PostStore) Update(ctx context.Context, id, callerID uint, title, text string) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != callerID {
		return nil, ErrForbidden
	}

	res := s.db.WithContext(ctx).Model(post).
		Select("title", "text").
		Updates(map[string]interface{}{"title": title, "text": text})
	if res.Error != nil {
		return nil, res.Error
	}
	post.Title = title
	post.Text = text
	return post, nil
}

// Delete removes a post and its votes in one transaction; a failure on
// either leaves both untouched.
func (s *PostStore) Delete(ctx context.Context, id, callerID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if post.CreatorID != callerID {
			return ErrForbidden
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Updoot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}
