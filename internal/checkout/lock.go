package checkout

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/velvetshop/storefront/internal/redisx"
)

// SubmitLock is the server-side version of the checkout button's loading
// flag: while a submission is in flight for a session, a second one is
// refused instead of racing the first.
type SubmitLock struct{ RDB *redis.Client }

func (l *SubmitLock) key(sessionID string) string {
	return fmt.Sprintf(redisx.KeySubmitLock, sessionID)
}

// Acquire claims the lock atomically. The TTL bounds how long a crashed
// submission can block the session.
func (l *SubmitLock) Acquire(ctx context.Context, sessionID string) (bool, error) {
	return l.RDB.SetNX(ctx, l.key(sessionID), "1", redisx.TTLSubmitLock).Result()
}

func (l *SubmitLock) Release(ctx context.Context, sessionID string) error {
	return l.RDB.Del(ctx, l.key(sessionID)).Err()
}
