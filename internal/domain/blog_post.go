package domain

import (
	"fmt"
	"strings"

	"gitee.com/flycash/portfolio/internal/errs"
)

// BlogPost 博客文章，发布动作会触发订阅者邮件群发
type BlogPost struct {
	ID          int64
	Slug        string
	Title       BilingualText
	Summary     BilingualText
	Body        BilingualText
	Published   bool
	PublishedAt int64 // 毫秒时间戳，未发布为 0
	Ctime       int64
	Utime       int64
}

func (p *BlogPost) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("%w: Slug = %q", errs.ErrInvalidParameter, p.Slug)
	}
	if p.Title.IsZero() {
		return fmt.Errorf("%w: Title 为空", errs.ErrInvalidParameter)
	}
	return nil
}
