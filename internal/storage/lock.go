package storage

import (
	"context"
	"time"
)

// DefaultLockTimeout bounds how long an operation waits to enter a critical section
const DefaultLockTimeout = 5 * time.Second

// WithLock runs fn while holding key. Acquisition gives up after timeout;
// fn itself runs under the caller's ctx.
func WithLock(ctx context.Context, l Locker, key string, timeout time.Duration, fn func() error) error {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	unlock, err := l.Lock(lockCtx, key)
	if err != nil {
		return err
	}
	defer unlock()

	return fn()
}
