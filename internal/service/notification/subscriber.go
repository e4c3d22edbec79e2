package notification

import (
	"context"
	"fmt"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/repository"
	"github.com/gofrs/uuid"
)

// SubscriberService 订阅管理
type SubscriberService interface {
	// Subscribe 订阅。重复订阅等同更新语言偏好并重置退订状态。
	Subscribe(ctx context.Context, emailAddr string, lang domain.Language) (domain.Subscriber, error)
	// Unsubscribe 按退订令牌退订
	Unsubscribe(ctx context.Context, token string) error
}

type subscriberService struct {
	repo repository.SubscriberRepository
}

// NewSubscriberService 创建订阅管理服务
func NewSubscriberService(repo repository.SubscriberRepository) SubscriberService {
	return &subscriberService{repo: repo}
}

func (s *subscriberService) Subscribe(ctx context.Context, emailAddr string, lang domain.Language) (domain.Subscriber, error) {
	token, err := uuid.NewV4()
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("生成退订令牌失败: %w", err)
	}
	sub := domain.Subscriber{
		Email:            emailAddr,
		Language:         lang,
		UnsubscribeToken: token.String(),
	}
	if err := sub.Validate(); err != nil {
		return domain.Subscriber{}, err
	}
	return s.repo.Upsert(ctx, sub)
}

func (s *subscriberService) Unsubscribe(ctx context.Context, token string) error {
	sub, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if sub.Unsubscribed {
		return nil
	}
	return s.repo.MarkUnsubscribed(ctx, sub.ID)
}
