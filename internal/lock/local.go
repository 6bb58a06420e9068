package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLock is the single-process Locker used when no redis address is
// configured. One operator, one session: contention only comes from
// concurrent HTTP requests, so a keyed in-memory map is enough.
type LocalLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLock() *LocalLock {
	return &LocalLock{held: make(map[string]struct{})}
}

func (l *LocalLock) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.held[key]; taken {
		return false, nil
	}

	l.held[key] = struct{}{}

	return true, nil
}

func (l *LocalLock) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, key)

	return nil
}

func (l *LocalLock) Close() error {
	return nil
}
