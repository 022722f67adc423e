package store

import (
	"errors"
)

// Sentinel errors the GraphQL layer branches on. Anything else coming
// out of a store is a storage failure and surfaces as a generic error.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("not the owner")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)
