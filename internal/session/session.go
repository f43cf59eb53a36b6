// Package session binds an authenticated identity to a server-side session
// keyed by an opaque cookie handle. Values live in a redis hash per session
// with an idle TTL refreshed on every access.
package session

import (
	"context"

	"github.com/labstack/echo/v4"

	"usercenter/internal/model"
)

// identityKey is the reserved session attribute holding the login snapshot.
// The auth service is the sole writer; the admin gate only reads it.
const identityKey = "USER_LOGIN_STATE"

// ContextKey is the echo context key under which the middleware stores the
// request's session.
const ContextKey = "session"

// Session is a typed key-value view over one session handle.
type Session interface {
	// ID returns the opaque session handle.
	ID() string
	// Set stores a JSON-encoded value under key.
	Set(ctx context.Context, key string, value interface{}) error
	// Get decodes the value under key into dest. Returns false when absent.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	// Remove deletes a single key.
	Remove(ctx context.Context, key string) error
	// Invalidate discards the whole session.
	Invalidate(ctx context.Context) error
	// Rotate swaps the handle for a fresh one and discards stored values, so a
	// handle that existed before authentication never survives it.
	Rotate(ctx context.Context) error
	// MaxIdleSeconds returns the configured inactivity timeout.
	MaxIdleSeconds() int
}

// FromContext returns the session injected by the manager middleware, or nil
// when the middleware is not installed.
func FromContext(c echo.Context) Session {
	s, _ := c.Get(ContextKey).(Session)
	return s
}

// SetIdentity stores the sanitized login snapshot, replacing any previous one.
func SetIdentity(ctx context.Context, s Session, user *model.SafeUser) error {
	return s.Set(ctx, identityKey, user)
}

// Identity returns the login snapshot, or ok=false when the session holds none.
func Identity(ctx context.Context, s Session) (*model.SafeUser, bool, error) {
	var user model.SafeUser
	ok, err := s.Get(ctx, identityKey, &user)
	if err != nil || !ok {
		return nil, false, err
	}
	return &user, true, nil
}

// RemoveIdentity clears the login snapshot without discarding other keys.
func RemoveIdentity(ctx context.Context, s Session) error {
	return s.Remove(ctx, identityKey)
}
