package domain

import (
	"fmt"
	"strings"

	"gitee.com/flycash/portfolio/internal/errs"
)

// Section 站点内容板块（about/skills/projects...），按 Category 唯一标识
type Section struct {
	ID       int64
	Category string // 小写的板块标识
	Title    BilingualText
	Subtitle BilingualText
	Body     BilingualText
	Order    int // 展示顺序，数字越小越靠前
	Ctime    int64
	Utime    int64
}

func (s *Section) Validate() error {
	if strings.TrimSpace(s.Category) == "" {
		return fmt.Errorf("%w: Category = %q", errs.ErrInvalidParameter, s.Category)
	}
	if s.Title.IsZero() {
		return fmt.Errorf("%w: Title 为空", errs.ErrInvalidParameter)
	}
	return nil
}

// NormalizedCategory 规范化后的板块标识，缓存键和存储都用它
func (s *Section) NormalizedCategory() string {
	return strings.ToLower(strings.TrimSpace(s.Category))
}

// SectionView 按某个语言渲染后的板块视图，用于对外读接口
type SectionView struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body,omitempty"`
	Order    int    `json:"order"`
}

// Localize 应用三级回退规则渲染板块
func (s *Section) Localize(lang Language) SectionView {
	return SectionView{
		Category: s.Category,
		Title:    s.Title.Localize(lang),
		Subtitle: s.Subtitle.Localize(lang),
		Body:     s.Body.Localize(lang),
		Order:    s.Order,
	}
}
