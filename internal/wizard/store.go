package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/pkg/redis"
)

// ErrSessionNotFound marks an expired or unknown session id.
var ErrSessionNotFound = errors.New("wizard session not found")

// SessionStore persists wizard sessions and the factory-selection handoff
// channel.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PutHandoff(ctx context.Context, owner uuid.UUID, factoryID uuid.UUID) error
	// ConsumeHandoff removes and returns the pending factory selection, if
	// any. A handoff can be observed exactly once.
	ConsumeHandoff(ctx context.Context, owner uuid.UUID) (uuid.UUID, bool, error)
}

// RedisStore keeps sessions as JSON blobs with a rolling TTL.
type RedisStore struct {
	client     *redis.Client
	sessionTTL time.Duration
	handoffTTL time.Duration
}

// NewRedisStore wires the session store onto the shared Redis client.
func NewRedisStore(client *redis.Client, sessionTTL, handoffTTL time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if sessionTTL <= 0 || handoffTTL <= 0 {
		return nil, fmt.Errorf("session and handoff ttl must be positive")
	}
	return &RedisStore{client: client, sessionTTL: sessionTTL, handoffTTL: handoffTTL}, nil
}

func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode wizard session: %w", err)
	}
	return s.client.Set(ctx, s.client.SessionKey(session.ID.String()), payload, s.sessionTTL)
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	raw, err := s.client.Get(ctx, s.client.SessionKey(id.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode wizard session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, s.client.SessionKey(id.String()))
}

func (s *RedisStore) PutHandoff(ctx context.Context, owner uuid.UUID, factoryID uuid.UUID) error {
	return s.client.Set(ctx, s.client.HandoffKey(owner.String()), factoryID.String(), s.handoffTTL)
}

func (s *RedisStore) ConsumeHandoff(ctx context.Context, owner uuid.UUID) (uuid.UUID, bool, error) {
	raw, err := s.client.GetDel(ctx, s.client.HandoffKey(owner.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	factoryID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("corrupt handoff payload: %w", err)
	}
	return factoryID, true, nil
}
