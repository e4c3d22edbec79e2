package domain

import (
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/portfolio/internal/errs"
)

// ContactMessage 联系表单留言
type ContactMessage struct {
	ID      int64
	Name    string
	Email   string
	Message string
	IP      string // 提交来源 IP，用于限流
	Ctime   int64
}

func (c *ContactMessage) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: Name = %q", errs.ErrInvalidParameter, c.Name)
	}
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: Email = %q", errs.ErrInvalidParameter, c.Email)
	}
	if strings.TrimSpace(c.Message) == "" {
		return fmt.Errorf("%w: Message 为空", errs.ErrInvalidParameter)
	}
	return nil
}

// RateLimitDecision 限流判定结果。被拒绝是预期内的业务结果，不是错误。
type RateLimitDecision struct {
	Allowed    bool
	Reason     string        // 第一个越限窗口的标识，如 "ip-hour"
	RetryAfter time.Duration // 该窗口的重置时间，允许时为 0
}

// Allow 放行判定
func Allow() RateLimitDecision {
	return RateLimitDecision{Allowed: true}
}

// Deny 拒绝判定
func Deny(reason string, retryAfter time.Duration) RateLimitDecision {
	return RateLimitDecision{Reason: reason, RetryAfter: retryAfter}
}
