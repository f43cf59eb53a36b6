package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Manager creates redis-backed sessions and owns the cookie handshake.
type Manager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
}

// NewManager builds a Manager. ttlSeconds is the session inactivity timeout.
func NewManager(client *redis.Client, cookieName string, ttlSeconds int) *Manager {
	if ttlSeconds <= 0 {
		ttlSeconds = 1800
	}
	return &Manager{
		client:     client,
		cookieName: cookieName,
		ttl:        time.Duration(ttlSeconds) * time.Second,
	}
}

// Middleware resolves the session handle from the request cookie, issuing a
// fresh one when absent, and injects the session into the echo context.
// Handles that do not parse as server-issued uuids are discarded and replaced,
// so a client cannot choose the handle its login lands on.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(m.cookieName); err == nil && ck.Value != "" {
				if _, parseErr := uuid.Parse(ck.Value); parseErr == nil {
					id = ck.Value
				}
			}
			issue := func(id string) {
				c.SetCookie(&http.Cookie{
					Name:     m.cookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			if id == "" {
				id = uuid.NewString()
				issue(id)
			}
			c.Set(ContextKey, &redisSession{id: id, manager: m, issueCookie: issue})
			return next(c)
		}
	}
}

type redisSession struct {
	id          string
	manager     *Manager
	issueCookie func(id string)
}

var _ Session = (*redisSession)(nil)

func (s *redisSession) ID() string {
	return s.id
}

func (s *redisSession) storeKey() string {
	return sessionKeyPrefix + s.id
}

func (s *redisSession) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal session value: %w", err)
	}
	pipe := s.manager.client.TxPipeline()
	pipe.HSet(ctx, s.storeKey(), key, payload)
	pipe.Expire(ctx, s.storeKey(), s.manager.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session value: %w", err)
	}
	return nil
}

func (s *redisSession) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := s.manager.client.HGet(ctx, s.storeKey(), key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session value: %w", err)
	}
	// Any access counts as activity, so push the idle deadline out.
	s.manager.client.Expire(ctx, s.storeKey(), s.manager.ttl)
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode session value: %w", err)
	}
	return true, nil
}

func (s *redisSession) Remove(ctx context.Context, key string) error {
	if err := s.manager.client.HDel(ctx, s.storeKey(), key).Err(); err != nil {
		return fmt.Errorf("remove session value: %w", err)
	}
	return nil
}

func (s *redisSession) Invalidate(ctx context.Context) error {
	if err := s.manager.client.Del(ctx, s.storeKey()).Err(); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// Rotate drops whatever lives under the current handle and switches to a
// fresh one, re-issuing the cookie. Nothing carries over.
func (s *redisSession) Rotate(ctx context.Context) error {
	if err := s.manager.client.Del(ctx, s.storeKey()).Err(); err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}
	s.id = uuid.NewString()
	if s.issueCookie != nil {
		s.issueCookie(s.id)
	}
	return nil
}

func (s *redisSession) MaxIdleSeconds() int {
	return int(s.manager.ttl.Seconds())
}
