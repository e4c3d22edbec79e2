package ratelimit

import (
	"time"

	"golang.org/x/net/context"
)

// Window 一个滑动窗口定义。窗口是连续滑动的墙钟窗口，不做日历对齐。
type Window struct {
	Name     string // 对外暴露的拒绝原因标识，如 "ip-hour"
	Key      string // 存储键，如 "ip:1.2.3.4"
	Limit    int    // 窗口内允许的最大事件数
	Interval time.Duration
}

// Result 一次取额的结果
type Result struct {
	Allowed     bool
	DeniedIndex int           // 第一个越限窗口在入参中的下标，放行时为 -1
	RetryAfter  time.Duration // 被拒绝窗口的重置时间
}

//go:generate mockgen -source=./types.go -package=limitmocks -destination=./mocks/limiter.mock.go Limiter
type Limiter interface {
	// Acquire 按入参顺序检查所有窗口：任何一个已达上限就整体拒绝，
	// 返回第一个越限窗口的下标，并且不消耗任何窗口的额度；
	// 全部未达上限才放行，并把本次事件同时记入所有窗口。
	// 检查加记录对单个事件是原子的。
	Acquire(ctx context.Context, windows []Window) (Result, error)
}
