package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/xpertech-quotes/internal/wizard"
	"github.com/angelmondragon/xpertech-quotes/pkg/redis"
)

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	WizardSessionKey(id string) string
}

// RedisStore keeps sessions as JSON strings with a sliding TTL, so any API
// instance can serve any session.
type RedisStore struct {
	kv  redisKV
	ttl time.Duration
}

func NewRedisStore(kv redisKV, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: kv, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*wizard.Session, error) {
	raw, err := r.kv.Get(ctx, r.kv.WizardSessionKey(id))
	if redis.IsNil(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return decode(id, []byte(raw))
}

func (r *RedisStore) Save(ctx context.Context, s *wizard.Session) error {
	payload, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, r.kv.WizardSessionKey(s.ID), string(payload), r.ttl); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.kv.Del(ctx, r.kv.WizardSessionKey(id)); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
