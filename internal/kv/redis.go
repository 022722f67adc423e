package kv

import (
	"context"
	"log"

	"grove/internal/utils"

	"github.com/redis/go-redis/v9"
)

// Connect opens the Redis client used for password-reset tokens and
// pings it so a bad address fails at startup, not on first use.
func Connect(addr, password, db string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       utils.StringToInt(db),
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	log.Println("Redis connection successfully opened")
	return rdb, nil
}
