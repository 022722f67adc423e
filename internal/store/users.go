package store

import (
	"context"
	"errors"

	"grove/internal/models"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. A unique-constraint violation is resolved
// to ErrDuplicateUsername or ErrDuplicateEmail by probing which column
// collided, so the caller can attach the error to the right form field.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var count int64
		s.db.WithContext(ctx).Model(&models.User{}).
			Where("username = ?", user.Username).Count(&count)
		if count > 0 {
			return ErrDuplicateUsername
		}
		return ErrDuplicateEmail
	}
	return err
}

func (s *UserStore) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ByIDs fetches many users in one query for the batched loader.
func (s *UserStore) ByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
