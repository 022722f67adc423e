package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"grove/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a per-test in-memory database with the production
// schema. The name is derived from the test so parallel tests never
// share state.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Post{}, &models.Updoot{}))
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func createPost(t *testing.T, gdb *gorm.DB, creatorID uint, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     title,
		Text:      "text of " + title,
		CreatorID: creatorID,
		CreatedAt: createdAt,
	}
	require.NoError(t, gdb.Create(post).Error)
	return post
}

// sumVotes recomputes the aggregate straight from the ledger.
func sumVotes(t *testing.T, gdb *gorm.DB, postID uint) int {
	t.Helper()
	var sum *int
	err := gdb.Model(&models.Updoot{}).
		Where("post_id = ?", postID).
		Select("SUM(value)").
		Scan(&sum).Error
	require.NoError(t, err)
	if sum == nil {
		return 0
	}
	return *sum
}

func postPoints(t *testing.T, gdb *gorm.DB, postID uint) int {
	t.Helper()
	var post models.Post
	require.NoError(t, gdb.First(&post, postID).Error)
	return post.Points
}

func ctx() context.Context {
	return context.Background()
}
