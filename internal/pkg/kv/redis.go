package kv

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultScanCount = 100

var _ Store = (*RedisStore)(nil)

// RedisStore 基于 Redis 的键值存储实现
type RedisStore struct {
	cmd redis.Cmdable
}

// NewRedisStore 创建 Redis 键值存储
func NewRedisStore(cmd redis.Cmdable) *RedisStore {
	return &RedisStore{cmd: cmd}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.cmd.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", errors.Wrap(err, "redis get failed")
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return errors.Wrap(s.cmd.Set(ctx, key, val, ttl).Err(), "redis set failed")
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return errors.Wrap(s.cmd.Del(ctx, keys...).Err(), "redis del failed")
}

// ScanKeys 用 SCAN 遍历，避免 KEYS 阻塞
func (s *RedisStore) ScanKeys(ctx context.Context, prefix string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := s.cmd.Scan(ctx, cursor, prefix+"*", defaultScanCount).Result()
		if err != nil {
			return nil, errors.Wrap(err, "redis scan failed")
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}
