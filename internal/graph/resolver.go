package graph

import (
	"context"
	"errors"

	"grove/internal/store"
)

// ErrNotAuthenticated aborts a protected mutation invoked without a
// logged-in session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNoLoaders means a field resolver ran outside a request that set up
// the batching caches; that is a wiring bug, not a user error.
var ErrNoLoaders = errors.New("no loaders on context")

// ResetTokens is the one-time password-reset token store.
type ResetTokens interface {
	Create(ctx context.Context, userID uint) (string, error)
	Verify(ctx context.Context, token string) (uint, error)
	Invalidate(ctx context.Context, token string) error
}

// Mailer delivers outbound mail. Sends are fire-and-forget.
type Mailer interface {
	SendPasswordResetEmail(email, link string)
}

// Resolver holds the dependencies every GraphQL operation works
// against. All of them are passed in explicitly so tests can wire
// fakes.
type Resolver struct {
	Users  *store.UserStore
	Posts  *store.PostStore
	Votes  *store.VoteStore
	Tokens ResetTokens
	Mail   Mailer

	// FrontendURL prefixes the reset link emailed to users.
	FrontendURL string
}
