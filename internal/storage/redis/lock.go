package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/brewduel/internal/model"
	"github.com/mcoot/brewduel/internal/storage"
)

// releaseScript deletes the lock only if it is still held by the caller's token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock acquires a lock shared by every process using this Redis.
// The lock expires after LockTTL even if the holder never releases it.
func (s *Storage) Lock(ctx context.Context, key string) (storage.Unlock, error) {
	k := lockKey(key)
	token := uuid.NewString()

	ticker := time.NewTicker(s.cfg.LockRetryInterval)
	defer ticker.Stop()

	for {
		acquired, err := s.client.SetNX(ctx, k, token, s.cfg.LockTTL).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w %q: %w", model.ErrLockTimeout, key, ctx.Err())
			}
			return nil, err
		}
		if acquired {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w %q: %w", model.ErrLockTimeout, key, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), s.cfg.LockTTL)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, s.client, []string{k}, token).Err()
		})
	}, nil
}
