package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/net/context"
)

var _ Limiter = (*LocalSlidingWindowLimiter)(nil)

// LocalSlidingWindowLimiter 进程内滑动窗口限流器。
// 单实例部署没有 Redis 时使用，语义和 Redis 实现保持一致。
type LocalSlidingWindowLimiter struct {
	mu      sync.Mutex
	events  map[string][]int64 // key -> 窗口内事件的毫秒时间戳，升序
	nowFunc func() time.Time
}

// NewLocalSlidingWindowLimiter 创建进程内滑动窗口限流器
func NewLocalSlidingWindowLimiter() *LocalSlidingWindowLimiter {
	return &LocalSlidingWindowLimiter{
		events:  make(map[string][]int64),
		nowFunc: time.Now,
	}
}

// Acquire 检查并记录一次事件
func (l *LocalSlidingWindowLimiter) Acquire(_ context.Context, windows []Window) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc().UnixMilli()

	// 先全部检查，再统一记录，保证被拒绝的请求不消耗额度
	for i, w := range windows {
		evts := l.prune(w.Key, now, w.Interval)
		if len(evts) >= w.Limit {
			retry := time.Duration(evts[0]+w.Interval.Milliseconds()-now) * time.Millisecond
			if retry < 0 {
				retry = 0
			}
			return Result{DeniedIndex: i, RetryAfter: retry}, nil
		}
	}

	for _, w := range windows {
		l.events[w.Key] = append(l.events[w.Key], now)
	}
	return Result{Allowed: true, DeniedIndex: -1}, nil
}

// prune 清掉窗口外的事件并返回剩余事件
func (l *LocalSlidingWindowLimiter) prune(key string, now int64, interval time.Duration) []int64 {
	evts := l.events[key]
	cutoff := now - interval.Milliseconds()
	idx := 0
	for idx < len(evts) && evts[idx] <= cutoff {
		idx++
	}
	if idx > 0 {
		evts = append([]int64(nil), evts[idx:]...)
		if len(evts) == 0 {
			delete(l.events, key)
		} else {
			l.events[key] = evts
		}
	}
	return evts
}
