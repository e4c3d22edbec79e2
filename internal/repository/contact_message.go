package repository

import (
	"context"
	"fmt"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/errs"
	"gitee.com/flycash/portfolio/internal/repository/dao"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ContactMessage, error)
}

type contactMessageRepository struct {
	dao dao.ContactMessageDAO
}

// NewContactMessageRepository 创建留言仓库实例
func NewContactMessageRepository(msgDao dao.ContactMessageDAO) ContactMessageRepository {
	return &contactMessageRepository{dao: msgDao}
}

func (r *contactMessageRepository) Create(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	entity, err := r.dao.Create(ctx, dao.ContactMessage{
		ID:      msg.ID,
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
		IP:      msg.IP,
	})
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("%w: %w", errs.ErrCreateContactFailed, err)
	}
	return r.toDomain(entity), nil
}

func (r *contactMessageRepository) ListRecent(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	entities, err := r.dao.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	msgs := make([]domain.ContactMessage, 0, len(entities))
	for _, e := range entities {
		msgs = append(msgs, r.toDomain(e))
	}
	return msgs, nil
}

func (r *contactMessageRepository) toDomain(e dao.ContactMessage) domain.ContactMessage {
	return domain.ContactMessage{
		ID:      e.ID,
		Name:    e.Name,
		Email:   e.Email,
		Message: e.Message,
		IP:      e.IP,
		Ctime:   e.Ctime,
	}
}
