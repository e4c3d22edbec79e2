package kv

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound 键不存在。调用方据此区分逻辑未命中和基础设施故障。
var ErrKeyNotFound = errors.New("key not found")

// Store 带过期时间的键值存储。
// 真实部署用 Redis 实现，测试或者没有 Redis 的环境用内存实现，
// 由启动方在构造时注入，组件内部不读任何全局开关。
//
//go:generate mockgen -source=./kv.go -package=kvmocks -destination=./mocks/store.mock.go Store
type Store interface {
	// Get 读取键值，键不存在返回 ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set 写入键值并设置过期时间，ttl <= 0 表示不过期
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	// Del 删除若干键，键不存在不算错误
	Del(ctx context.Context, keys ...string) error
	// ScanKeys 按前缀扫描现存的键
	ScanKeys(ctx context.Context, prefix string) ([]string, error)
}
