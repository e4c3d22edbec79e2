package ratelimit

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"
)

var (
	//go:embed lua/multi_window.lua
	multiWindowScript string

	_ Limiter = (*RedisSlidingWindowLimiter)(nil)
)

const wantResultLen = 3

// RedisSlidingWindowLimiter 基于 Redis ZSET 的滑动窗口限流器。
// 所有窗口的检查和记录在一个 lua 脚本里完成，对单个事件是原子的，
// 并发请求不会在只剩一个名额时同时挤进来。
type RedisSlidingWindowLimiter struct {
	cmd       redis.Cmdable
	keyPrefix string
}

// NewRedisSlidingWindowLimiter 创建一个基于Redis的滑动窗口限流器
func NewRedisSlidingWindowLimiter(cmd redis.Cmdable) *RedisSlidingWindowLimiter {
	return &RedisSlidingWindowLimiter{
		cmd:       cmd,
		keyPrefix: "ratelimit:",
	}
}

// Acquire 检查并记录一次事件
func (r *RedisSlidingWindowLimiter) Acquire(ctx context.Context, windows []Window) (Result, error) {
	if len(windows) == 0 {
		return Result{Allowed: true, DeniedIndex: -1}, nil
	}

	member, err := uuid.NewV4()
	if err != nil {
		return Result{}, fmt.Errorf("生成事件标识失败: %w", err)
	}

	keys := make([]string, 0, len(windows))
	argv := make([]any, 0, 2+len(windows)*2)
	argv = append(argv, time.Now().UnixMilli(), member.String())
	for _, w := range windows {
		keys = append(keys, r.keyPrefix+w.Key)
		argv = append(argv, w.Interval.Milliseconds(), w.Limit)
	}

	res, err := r.cmd.Eval(ctx, multiWindowScript, keys, argv...).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("执行限流脚本失败: %w", err)
	}
	if len(res) != wantResultLen {
		return Result{}, fmt.Errorf("限流脚本返回值不合法: %v", res)
	}

	if res[0] == 1 {
		return Result{Allowed: true, DeniedIndex: -1}, nil
	}
	return Result{
		DeniedIndex: int(res[1]),
		RetryAfter:  time.Duration(res[2]) * time.Millisecond,
	}, nil
}
