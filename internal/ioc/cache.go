package ioc

import (
	"time"

	"gitee.com/flycash/portfolio/internal/pkg/kv"
	"gitee.com/flycash/portfolio/internal/repository/cache"
	"github.com/gotomicro/ego/core/econf"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

func InitGoCache() *ca.Cache {
	return ca.New(time.Minute*15, time.Minute*15)
}

// InitKVStore 按配置选择键值存储后端，默认 Redis
func InitKVStore(rdb *redis.Client, local *ca.Cache) kv.Store {
	type Config struct {
		Mode string
	}
	var cfg Config
	if err := econf.UnmarshalKey("kv", &cfg); err != nil {
		panic(err)
	}
	if cfg.Mode == "memory" {
		return kv.NewMemoryStore(local)
	}
	return kv.NewRedisStore(rdb)
}

func InitContentCache(store kv.Store) *cache.ContentCache {
	type Config struct {
		TTL time.Duration
	}
	var cfg Config
	if err := econf.UnmarshalKey("cache.content", &cfg); err != nil {
		panic(err)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour * 24 * 30
	}
	return cache.NewContentCache(store, cfg.TTL)
}
