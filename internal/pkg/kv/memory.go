package kv

import (
	"context"
	"strings"
	"time"

	ca "github.com/patrickmn/go-cache"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore 进程内键值存储，给没有 Redis 的部署和单元测试用
type MemoryStore struct {
	c *ca.Cache
}

// NewMemoryStore 创建内存键值存储
func NewMemoryStore(c *ca.Cache) *MemoryStore {
	return &MemoryStore{c: c}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", ErrKeyNotFound
	}
	return v.(string), nil
}

func (s *MemoryStore) Set(_ context.Context, key, val string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ca.NoExpiration
	}
	s.c.Set(key, val, ttl)
	return nil
}

func (s *MemoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.c.Delete(key)
	}
	return nil
}

func (s *MemoryStore) ScanKeys(_ context.Context, prefix string) ([]string, error) {
	items := s.c.Items()
	keys := make([]string, 0, len(items))
	for key := range items {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
