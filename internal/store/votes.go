package store

import (
	"context"
	"errors"

	"grove/internal/models"

	"gorm.io/gorm"
)

// VoteKey identifies one user's vote on one post.
type VoteKey struct {
	PostID uint
	UserID uint
}

type VoteStore struct {
	db *gorm.DB
}

func NewVoteStore(db *gorm.DB) *VoteStore {
	return &VoteStore{db: db}
}

// Apply records a vote and keeps post.points equal to the signed sum of
// the post's updoot rows. Any positive value counts as +1, anything
// else as -1.
//
// The ledger write and the points adjustment run in one transaction,
// and the adjustment is a relative update (points = points + delta) so
// concurrent voters on the same post serialize on the row instead of
// losing increments.
func (s *VoteStore) Apply(ctx context.Context, postID, userID uint, value int) error {
	sign := -1
	if value > 0 {
		sign = 1
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Updoot
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			First(&existing).Error

		switch {
		case err == nil && existing.Value == sign:
			// Repeat of the same vote, nothing to count.
			return nil

		case err == nil:
			// Flip: the old contribution goes away and the new one
			// lands, 2*sign in a single adjustment.
			res := tx.Model(&models.Updoot{}).
				Where("post_id = ? AND user_id = ?", postID, userID).
				Update("value", sign)
			if res.Error != nil {
				return res.Error
			}
			return adjustPoints(tx, postID, 2*sign)

		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Updoot{PostID: postID, UserID: userID, Value: sign}
			if err := tx.Create(&vote).Error; err != nil {
				if errors.Is(err, gorm.ErrForeignKeyViolated) {
					return ErrNotFound
				}
				return err
			}
			return adjustPoints(tx, postID, sign)

		default:
			return err
		}
	})
}

// adjustPoints moves the aggregate by delta. Zero rows affected means
// the post vanished underneath us; the transaction rolls back.
func adjustPoints(tx *gorm.DB, postID uint, delta int) error {
	res := tx.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *VoteStore) Find(ctx context.Context, postID, userID uint) (*models.Updoot, error) {
	var vote models.Updoot
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vote, nil
}

// FindBatch fetches votes for many (post,user) pairs in one query for
// the batched loader. Missing pairs simply have no map entry.
func (s *VoteStore) FindBatch(ctx context.Context, keys []VoteKey) (map[VoteKey]*models.Updoot, error) {
	if len(keys) == 0 {
		return map[VoteKey]*models.Updoot{}, nil
	}

	pairs := make([][]interface{}, len(keys))
	for i, k := range keys {
		pairs[i] = []interface{}{k.PostID, k.UserID}
	}

	var votes []models.Updoot
	err := s.db.WithContext(ctx).
		Where("(post_id, user_id) IN ?", pairs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	out := make(map[VoteKey]*models.Updoot, len(votes))
	for i := range votes {
		v := votes[i]
		out[VoteKey{PostID: v.PostID, UserID: v.UserID}] = &v
	}
	return out, nil
}
