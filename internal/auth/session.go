package auth

import (
	"context"

	"github.com/gin-contrib/sessions"
)

const sessionUserKey = "user_id"

type ctxKey struct{}

// WithSession carries the request's cookie session into the context the
// GraphQL resolvers run under.
func WithSession(ctx context.Context, s sessions.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func sessionFrom(ctx context.Context) sessions.Session {
	s, _ := ctx.Value(ctxKey{}).(sessions.Session)
	return s
}

// UserID is the auth gate: every protected operation calls it first.
// The second return is false when there is no logged-in user.
func UserID(ctx context.Context) (uint, bool) {
	s := sessionFrom(ctx)
	if s == nil {
		return 0, false
	}
	id, ok := s.Get(sessionUserKey).(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// Login records the user id on the session cookie.
func Login(ctx context.Context, userID uint) error {
	s := sessionFrom(ctx)
	if s == nil {
		return nil
	}
	s.Set(sessionUserKey, userID)
	return s.Save()
}

// Logout clears the session server-side and expires the cookie.
func Logout(ctx context.Context) error {
	s := sessionFrom(ctx)
	if s == nil {
		return nil
	}
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}
