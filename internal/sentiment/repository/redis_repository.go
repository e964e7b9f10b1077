package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-sentiment-tracker/pkg/common"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SummaryCacheRepository caches generated narrative summaries per ticker.
type SummaryCacheRepository interface {
	Get(ctx context.Context, ticker string) (string, bool, error)
	Set(ctx context.Context, ticker, summary string, ttl time.Duration) error
}

// RunLockRepository guards against two collector runs overlapping.
type RunLockRepository interface {
	// Acquire returns a release func when the lock was taken, or ok=false
	// when another run holds it.
	Acquire(ctx context.Context, ttl time.Duration) (release func(), ok bool, err error)
}

// NewSummaryCacheRepository creates a redis-backed SummaryCacheRepository.
func NewSummaryCacheRepository(client *redis.Client) SummaryCacheRepository {
	return &redisSummaryCache{client: client}
}

type redisSummaryCache struct {
	client *redis.Client
}

func (r *redisSummaryCache) Get(ctx context.Context, ticker string) (string, bool, error) {
	val, err := r.client.Get(ctx, common.RedisKeySummaryPrefix+ticker).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached summary: %w", err)
	}
	return val, true, nil
}

func (r *redisSummaryCache) Set(ctx context.Context, ticker, summary string, ttl time.Duration) error {
	if err := r.client.Set(ctx, common.RedisKeySummaryPrefix+ticker, summary, ttl).Err(); err != nil {
		return fmt.Errorf("cache summary: %w", err)
	}
	return nil
}

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRunLockRepository creates a redis-backed RunLockRepository.
func NewRunLockRepository(client *redis.Client) RunLockRepository {
	return &redisRunLock{client: client, key: common.RedisKeyCollectorRunLock}
}

type redisRunLock struct {
	client *redis.Client
	key    string
}

func (r *redisRunLock) Acquire(ctx context.Context, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, r.key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, r.client, []string{r.key}, token).Err()
	}
	return release, true, nil
}
