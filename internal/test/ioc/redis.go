package ioc

import (
	prodioc "gitee.com/flycash/portfolio/internal/ioc"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

func InitRedis() *redis.Client {
	econf.Set("redis", map[string]any{
		"addr": "localhost:6379",
	})
	return prodioc.InitRedisClient()
}
