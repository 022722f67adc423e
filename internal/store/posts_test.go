package store

import (
	"testing"
	"time"

	"grove/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{CreatedAt: time.Date(2024, 5, 17, 9, 30, 12, 345678000, time.UTC), ID: 42}
	decoded, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	assert.True(t, c.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, c.ID, decoded.ID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	for _, s := range []string{"not base64!!", "bm9jb2xvbg", "YTpi"} {
		_, err := DecodeCursor(s)
		assert.Error(t, err, s)
	}
}

func TestListPaginationRoundTrip(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	user := createUser(t, gdb, "alice")

	base := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	titles := []string{"one", "two", "three", "four", "five"}
	for i, title := range titles {
		createPost(t, gdb, user.ID, title, base.Add(time.Duration(i)*time.Minute))
	}

	// Page 1: newest two.
	page1, hasMore, err := posts.List(ctx(), 2, nil)
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, page1, 2)
	assert.Equal(t, "five", page1[0].Title)
	assert.Equal(t, "four", page1[1].Title)

	cursorFrom := func(p models.Post) *Cursor {
		return &Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	}

	// Page 2.
	page2, hasMore, err := posts.List(ctx(), 2, cursorFrom(page1[1]))
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, page2, 2)
	assert.Equal(t, "three", page2[0].Title)
	assert.Equal(t, "two", page2[1].Title)

	// Final page: one post left, no more.
	page3, hasMore, err := posts.List(ctx(), 2, cursorFrom(page2[1]))
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, page3, 1)
	assert.Equal(t, "one", page3[0].Title)

	// Concatenation reproduces the full list, no dupes or gaps.
	var all []string
	for _, p := range append(append(page1, page2...), page3...) {
		all = append(all, p.Title)
	}
	assert.Equal(t, []string{"five", "four", "three", "two", "one"}, all)
}

func TestListTieBreakOnEqualTimestamps(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	user := createUser(t, gdb, "alice")

	// All five rows share one timestamp; paging keys off the id.
	at := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		createPost(t, gdb, user.ID, title, at)
	}

	var seen []string
	var cursor *Cursor
	for {
		page, hasMore, err := posts.List(ctx(), 2, cursor)
		require.NoError(t, err)
		for _, p := range page {
			seen = append(seen, p.Title)
		}
		if !hasMore {
			break
		}
		last := page[len(page)-1]
		cursor = &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	// Highest id first, every row exactly once.
	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, seen)
}

func TestListClampsLimit(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	user := createUser(t, gdb, "alice")

	base := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	for i := 0; i < MaxListLimit+5; i++ {
		createPost(t, gdb, user.ID, "post", base.Add(time.Duration(i)*time.Second))
	}

	page, hasMore, err := posts.List(ctx(), 1000, nil)
	require.NoError(t, err)
	assert.Len(t, page, MaxListLimit)
	assert.True(t, hasMore)
}

func TestUpdateOnlyTouchesTitleAndText(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	votes := NewVoteStore(gdb)
	user := createUser(t, gdb, "alice")
	post := createPost(t, gdb, user.ID, "before", time.Now())
	require.NoError(t, votes.Apply(ctx(), post.ID, user.ID, 1))

	updated, err := posts.Update(ctx(), post.ID, user.ID, "after", "new text")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "new text", updated.Text)

	// The edit must not clobber the aggregate.
	assert.Equal(t, 1, postPoints(t, gdb, post.ID))
}

func TestUpdateByNonOwner(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	alice := createUser(t, gdb, "alice")
	mallory := createUser(t, gdb, "mallory")
	post := createPost(t, gdb, alice.ID, "original", time.Now())

	_, err := posts.Update(ctx(), post.ID, mallory.ID, "hijacked", "x")
	assert.ErrorIs(t, err, ErrForbidden)

	kept, err := posts.Get(ctx(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", kept.Title)
}

func TestUpdateMissingPost(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	user := createUser(t, gdb, "alice")

	_, err := posts.Update(ctx(), 9999, user.ID, "t", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCascadesVotes(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	votes := NewVoteStore(gdb)
	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")
	post := createPost(t, gdb, alice.ID, "doomed", time.Now())
	keep := createPost(t, gdb, alice.ID, "kept", time.Now())

	require.NoError(t, votes.Apply(ctx(), post.ID, alice.ID, 1))
	require.NoError(t, votes.Apply(ctx(), post.ID, bob.ID, -1))
	require.NoError(t, votes.Apply(ctx(), keep.ID, bob.ID, 1))

	require.NoError(t, posts.Delete(ctx(), post.ID, alice.ID))

	_, err := posts.Get(ctx(), post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// No orphan ledger rows; votes on other posts untouched.
	var count int64
	gdb.Model(&models.Updoot{}).Where("post_id = ?", post.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	gdb.Model(&models.Updoot{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteByNonOwner(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	votes := NewVoteStore(gdb)
	alice := createUser(t, gdb, "alice")
	mallory := createUser(t, gdb, "mallory")
	post := createPost(t, gdb, alice.ID, "mine", time.Now())
	require.NoError(t, votes.Apply(ctx(), post.ID, alice.ID, 1))

	err := posts.Delete(ctx(), post.ID, mallory.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Post and its votes survive intact.
	kept, err := posts.Get(ctx(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, kept.Points)

	var count int64
	gdb.Model(&models.Updoot{}).Where("post_id = ?", post.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteMissingPost(t *testing.T) {
	gdb := testDB(t)
	posts := NewPostStore(gdb)
	user := createUser(t, gdb, "alice")

	assert.ErrorIs(t, posts.Delete(ctx(), 9999, user.ID), ErrNotFound)
}
