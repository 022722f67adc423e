package store

import (
	"testing"

	"grove/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDuplicateUsername(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb)
	createUser(t, gdb, "alice")

	err := users.Create(ctx(), &models.User{
		Username: "alice",
		Email:    "other@example.com",
		Password: "hash",
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb)
	createUser(t, gdb, "alice")

	err := users.Create(ctx(), &models.User{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "hash",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestByUsernameAndEmail(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb)
	created := createUser(t, gdb, "alice")

	byName, err := users.ByUsername(ctx(), "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := users.ByEmail(ctx(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = users.ByUsername(ctx(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByIDs(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb)
	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")

	got, err := users.ByIDs(ctx(), []uint{alice.ID, bob.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUpdatePassword(t *testing.T) {
	gdb := testDB(t)
	users := NewUserStore(gdb)
	alice := createUser(t, gdb, "alice")

	require.NoError(t, users.UpdatePassword(ctx(), alice.ID, "newhash"))

	got, err := users.ByID(ctx(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.Password)

	assert.ErrorIs(t, users.UpdatePassword(ctx(), 9999, "x"), ErrNotFound)
}
