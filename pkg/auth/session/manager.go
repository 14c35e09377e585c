// Package session tracks live operator sessions in Redis, keyed by the
// JWT's jti. A token whose session was revoked stops working before its
// expiry does.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/sistemaflotilla/flotilla-backend/pkg/config"
	redisclient "github.com/sistemaflotilla/flotilla-backend/pkg/redis"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	AccessSessionKey(accessID string) string
}

// Manager handles session creation, lookup and revocation.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis. The session TTL
// matches the access token lifetime.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.Expiration()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Create records a session for the provided access ID.
func (m *Manager) Create(ctx context.Context, accessID, usuario string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Set(ctx, m.keyer.AccessSessionKey(accessID), usuario, m.ttl)
}

// HasSession reports whether the provided access ID still has a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	if _, err := m.store.Get(ctx, m.keyer.AccessSessionKey(accessID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke deletes the session tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.keyer.AccessSessionKey(accessID))
}

// NewAccessID produces a stable identifier used as the JWT jti/Redis key.
func NewAccessID() string {
	return uuid.NewString()
}
