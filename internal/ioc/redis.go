package ioc

import (
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

func InitRedisClient() *redis.Client {
	type Config struct {
		Addr string
	}
	var cfg Config
	err := econf.UnmarshalKey("redis", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})
}
