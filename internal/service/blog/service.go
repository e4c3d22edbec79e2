package blog

import (
	"context"
	"time"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/repository"
	"gitee.com/flycash/portfolio/internal/service/notification"
)

// Service 博客文章管理与发布
type Service interface {
	GetByID(ctx context.Context, id int64) (domain.BlogPost, error)
	ListPublished(ctx context.Context) ([]domain.BlogPost, error)
	Save(ctx context.Context, post domain.BlogPost) (domain.BlogPost, error)
	// Publish 发布文章并触发订阅者群发，返回成功发出的邮件数。
	// 对已发布的文章重复调用等同人工重发整次群发。
	Publish(ctx context.Context, id int64) (int, error)
}

type service struct {
	repo       repository.BlogPostRepository
	dispatcher notification.Dispatcher
}

// NewService 创建博客服务
func NewService(repo repository.BlogPostRepository, dispatcher notification.Dispatcher) Service {
	return &service{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

func (s *service) GetByID(ctx context.Context, id int64) (domain.BlogPost, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListPublished(ctx context.Context) ([]domain.BlogPost, error) {
	return s.repo.ListPublished(ctx)
}

func (s *service) Save(ctx context.Context, post domain.BlogPost) (domain.BlogPost, error) {
	if err := post.Validate(); err != nil {
		return domain.BlogPost{}, err
	}
	return s.repo.Save(ctx, post)
}

func (s *service) Publish(ctx context.Context, id int64) (int, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if !post.Published {
		now := time.Now().UnixMilli()
		if err := s.repo.MarkPublished(ctx, id, now); err != nil {
			return 0, err
		}
		post.Published = true
		post.PublishedAt = now
	}

	return s.dispatcher.Dispatch(ctx, post)
}
