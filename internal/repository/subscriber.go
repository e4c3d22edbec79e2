package repository

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/errs"
	"gitee.com/flycash/portfolio/internal/repository/dao"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./subscriber.go -package=repomocks -destination=./mocks/subscriber.mock.go SubscriberRepository
type SubscriberRepository interface {
	// ListActive 返回当前未退订的订阅者。群发前实时读取，不走缓存：
	// 宁可慢一点，也不能给刚退订的人发邮件。
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
	GetByToken(ctx context.Context, token string) (domain.Subscriber, error)
	Upsert(ctx context.Context, sub domain.Subscriber) (domain.Subscriber, error)
	MarkUnsubscribed(ctx context.Context, id int64) error
}

type subscriberRepository struct {
	dao dao.SubscriberDAO
}

// NewSubscriberRepository 创建订阅者仓库实例
func NewSubscriberRepository(subscriberDao dao.SubscriberDAO) SubscriberRepository {
	return &subscriberRepository{dao: subscriberDao}
}

func (r *subscriberRepository) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	entities, err := r.dao.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrLoadSubscriberFailed, err)
	}
	subs := make([]domain.Subscriber, 0, len(entities))
	for _, e := range entities {
		subs = append(subs, r.toDomain(e))
	}
	return subs, nil
}

func (r *subscriberRepository) GetByToken(ctx context.Context, token string) (domain.Subscriber, error) {
	entity, err := r.dao.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Subscriber{}, fmt.Errorf("%w", errs.ErrTokenNotFound)
		}
		return domain.Subscriber{}, err
	}
	return r.toDomain(entity), nil
}

func (r *subscriberRepository) Upsert(ctx context.Context, sub domain.Subscriber) (domain.Subscriber, error) {
	entity, err := r.dao.Upsert(ctx, dao.Subscriber{
		Email:            sub.NormalizedEmail(),
		Language:         string(sub.Language),
		UnsubscribeToken: sub.UnsubscribeToken,
		Unsubscribed:     sub.Unsubscribed,
	})
	if err != nil {
		return domain.Subscriber{}, err
	}
	return r.toDomain(entity), nil
}

func (r *subscriberRepository) MarkUnsubscribed(ctx context.Context, id int64) error {
	return r.dao.MarkUnsubscribed(ctx, id)
}

func (r *subscriberRepository) toDomain(e dao.Subscriber) domain.Subscriber {
	return domain.Subscriber{
		ID:               e.ID,
		Email:            e.Email,
		Language:         domain.ParseLanguage(e.Language),
		UnsubscribeToken: e.UnsubscribeToken,
		Unsubscribed:     e.Unsubscribed,
		Ctime:            e.Ctime,
		Utime:            e.Utime,
	}
}
