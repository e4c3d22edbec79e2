package ioc

import (
	"gitee.com/flycash/portfolio/internal/pkg/ratelimit"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

// InitLimiter 限流器。单机部署或者测试环境可以用 local 模式，
// 多实例部署必须用 Redis，否则各实例各数各的，阈值形同虚设。
func InitLimiter(rdb *redis.Client) ratelimit.Limiter {
	type Config struct {
		Mode string
	}
	var cfg Config
	if err := econf.UnmarshalKey("ratelimit", &cfg); err != nil {
		panic(err)
	}
	if cfg.Mode == "local" {
		return ratelimit.NewLocalSlidingWindowLimiter()
	}
	return ratelimit.NewRedisSlidingWindowLimiter(rdb)
}
