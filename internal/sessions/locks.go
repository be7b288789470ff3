package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionBusy is returned when a session lock is not released within the
// locker's wait bound.
var ErrSessionBusy = errors.New("wizard session busy")

// Locker serializes mutations of one session. The returned func releases the
// lock and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, id string) (func(), error)
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex hands out one mutex per session id and forgets it once no
// caller holds or waits on it. It only serializes callers in this process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*lockEntry)}
}

func (k *keyedMutex) Lock(_ context.Context, id string) (func(), error) {
	k.mu.Lock()
	entry, ok := k.locks[id]
	if !ok {
		entry = &lockEntry{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}, nil
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

type redisLockKV interface {
	TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, token string) error
	SessionLockKey(id string) string
}

const (
	defaultLockTTL   = 5 * time.Second
	defaultLockWait  = 3 * time.Second
	defaultLockRetry = 25 * time.Millisecond
)

// RedisLocker locks a session across every API instance sharing one Redis.
// Each holder writes a random token so only it can release the lock; the TTL
// frees locks left behind by a crashed holder.
type RedisLocker struct {
	kv       redisLockKV
	ttl      time.Duration
	wait     time.Duration
	retry    time.Duration
	newToken func() string
}

func NewRedisLocker(kv redisLockKV, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{
		kv:       kv,
		ttl:      ttl,
		wait:     defaultLockWait,
		retry:    defaultLockRetry,
		newToken: uuid.NewString,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, id string) (func(), error) {
	key := l.kv.SessionLockKey(id)
	token := l.newToken()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		ok, err := l.kv.TryLock(waitCtx, key, token, l.ttl)
		if err != nil {
			if waitCtx.Err() != nil && ctx.Err() == nil {
				return nil, fmt.Errorf("lock session %s: %w", id, ErrSessionBusy)
			}
			return nil, fmt.Errorf("lock session %s: %w", id, err)
		}
		if ok {
			return func() {
				// the request context may already be done; release regardless
				_ = l.kv.Unlock(context.WithoutCancel(ctx), key, token)
			}, nil
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			if ctx.Err() != nil {
				return nil, fmt.Errorf("lock session %s: %w", id, ctx.Err())
			}
			return nil, fmt.Errorf("lock session %s: %w", id, ErrSessionBusy)
		case <-timer.C:
		}
	}
}
