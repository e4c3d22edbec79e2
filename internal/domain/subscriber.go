package domain

import (
	"fmt"
	"strings"

	"gitee.com/flycash/portfolio/internal/errs"
)

// Subscriber 新闻邮件订阅者
type Subscriber struct {
	ID               int64
	Email            string // 存储前统一转小写
	Language         Language
	UnsubscribeToken string
	Unsubscribed     bool
	Ctime            int64
	Utime            int64
}

func (s *Subscriber) Validate() error {
	if !strings.Contains(s.Email, "@") {
		return fmt.Errorf("%w: Email = %q", errs.ErrInvalidParameter, s.Email)
	}
	return nil
}

// NormalizedEmail 小写去空白后的邮箱，唯一索引和限流键都用它
func (s *Subscriber) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(s.Email))
}
