package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	forgetPasswordPrefix = "forget-password:"
	resetTokenTTL        = 3 * 24 * time.Hour
)

// ErrInvalidToken covers unknown, expired and already-used tokens alike.
var ErrInvalidToken = errors.New("token expired or invalid")

// TokenService keeps one-time password-reset tokens in Redis, keyed
// under a namespace prefix and expiring after three days.
type TokenService struct {
	rdb *redis.Client
}

func NewTokenService(rdb *redis.Client) *TokenService {
	return &TokenService{rdb: rdb}
}

// Create issues a fresh unguessable token for the user.
func (s *TokenService) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	err := s.rdb.Set(ctx, forgetPasswordPrefix+token, uint64(userID), resetTokenTTL).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

// Verify resolves a token to its user id without consuming it.
func (s *TokenService) Verify(ctx context.Context, token string) (uint, error) {
	val, err := s.rdb.Get(ctx, forgetPasswordPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Invalidate deletes the token after a successful password change so it
// cannot be replayed.
func (s *TokenService) Invalidate(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, forgetPasswordPrefix+token).Err()
}
