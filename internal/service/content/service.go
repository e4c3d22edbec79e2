package content

import (
	"context"
	"strings"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/repository"
)

// Service 站点内容读写。读走旁路缓存，写落库后失效缓存。
type Service interface {
	// List 按语言渲染全部板块
	List(ctx context.Context, lang domain.Language) ([]domain.SectionView, error)
	// GetByCategory 按语言渲染单个板块，不存在返回 ErrSectionNotFound
	GetByCategory(ctx context.Context, category string, lang domain.Language) (domain.SectionView, error)
	Save(ctx context.Context, sec domain.Section) (domain.Section, error)
	Delete(ctx context.Context, category string) error
}

type service struct {
	repo repository.SectionRepository
}

// NewService 创建内容服务
func NewService(repo repository.SectionRepository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, lang domain.Language) ([]domain.SectionView, error) {
	secs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.SectionView, 0, len(secs))
	for i := range secs {
		views = append(views, secs[i].Localize(lang))
	}
	return views, nil
}

func (s *service) GetByCategory(ctx context.Context, category string, lang domain.Language) (domain.SectionView, error) {
	sec, err := s.repo.GetByCategory(ctx, strings.ToLower(strings.TrimSpace(category)))
	if err != nil {
		return domain.SectionView{}, err
	}
	return sec.Localize(lang), nil
}

func (s *service) Save(ctx context.Context, sec domain.Section) (domain.Section, error) {
	if err := sec.Validate(); err != nil {
		return domain.Section{}, err
	}
	return s.repo.Save(ctx, sec)
}

func (s *service) Delete(ctx context.Context, category string) error {
	return s.repo.Delete(ctx, strings.ToLower(strings.TrimSpace(category)))
}
