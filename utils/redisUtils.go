package utils

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// RedisWrapper archives raw OAI-PMH pages into a Redis list, one list per
// harvest run. The archive is write-only: nothing reads it back to resume a run.
type RedisWrapper struct {
	RedisConn *redis.Client
	KeyPrefix string
	RunID     string
}

// InitializeCentralRedis connects to addr and checks the connection with PING.
func InitializeCentralRedis(ctx context.Context, addr, password string, db int, keyPrefix, runID string) (*RedisWrapper, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return NewRedisWrapper(rdb, keyPrefix, runID), nil
}

func NewRedisWrapper(rdb *redis.Client, keyPrefix, runID string) *RedisWrapper {
	if keyPrefix == EmptyString {
		keyPrefix = "star"
	}
	return &RedisWrapper{RedisConn: rdb, KeyPrefix: keyPrefix, RunID: runID}
}

// PagesKey is the list holding the raw pages of the current run.
func (redisWrapper *RedisWrapper) PagesKey() string {
	return redisWrapper.KeyPrefix + ":pages:" + redisWrapper.RunID
}

// TokensKey is the hash mapping page numbers to the resumption token each page was requested with.
func (redisWrapper *RedisWrapper) TokensKey() string {
	return redisWrapper.KeyPrefix + ":tokens:" + redisWrapper.RunID
}

// ArchivePage appends the raw page body to the run list and records the
// token used to request it.
func (redisWrapper *RedisWrapper) ArchivePage(ctx context.Context, page int, token string, body []byte) error {
	pipe := redisWrapper.RedisConn.TxPipeline()
	pipe.RPush(ctx, redisWrapper.PagesKey(), body)
	pipe.HSet(ctx, redisWrapper.TokensKey(), strconv.Itoa(page), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("archiving page %d to redis: %w", page, err)
	}
	return nil
}

func (redisWrapper *RedisWrapper) Close() error {
	return redisWrapper.RedisConn.Close()
}
