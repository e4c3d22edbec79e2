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

type BlogPostRepository interface {
	GetByID(ctx context.Context, id int64) (domain.BlogPost, error)
	ListPublished(ctx context.Context) ([]domain.BlogPost, error)
	Save(ctx context.Context, post domain.BlogPost) (domain.BlogPost, error)
	// MarkPublished 把文章置为已发布并记录发布时间
	MarkPublished(ctx context.Context, id, publishedAt int64) error
}

type blogPostRepository struct {
	dao dao.BlogPostDAO
}

// NewBlogPostRepository 创建文章仓库实例
func NewBlogPostRepository(postDao dao.BlogPostDAO) BlogPostRepository {
	return &blogPostRepository{dao: postDao}
}

func (r *blogPostRepository) GetByID(ctx context.Context, id int64) (domain.BlogPost, error) {
	entity, err := r.dao.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BlogPost{}, fmt.Errorf("%w: id = %d", errs.ErrPostNotFound, id)
		}
		return domain.BlogPost{}, err
	}
	return r.toDomain(entity), nil
}

func (r *blogPostRepository) ListPublished(ctx context.Context) ([]domain.BlogPost, error) {
	entities, err := r.dao.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]domain.BlogPost, 0, len(entities))
	for _, e := range entities {
		posts = append(posts, r.toDomain(e))
	}
	return posts, nil
}

func (r *blogPostRepository) Save(ctx context.Context, post domain.BlogPost) (domain.BlogPost, error) {
	entity, err := r.dao.Save(ctx, r.toEntity(post))
	if err != nil {
		return domain.BlogPost{}, err
	}
	return r.toDomain(entity), nil
}

func (r *blogPostRepository) MarkPublished(ctx context.Context, id, publishedAt int64) error {
	return r.dao.MarkPublished(ctx, id, publishedAt)
}

func (r *blogPostRepository) toDomain(e dao.BlogPost) domain.BlogPost {
	return domain.BlogPost{
		ID:          e.ID,
		Slug:        e.Slug,
		Title:       domain.BilingualText{ES: e.TitleEs, EN: e.TitleEn, Legacy: e.Title},
		Summary:     domain.BilingualText{ES: e.SummaryEs, EN: e.SummaryEn, Legacy: e.Summary},
		Body:        domain.BilingualText{ES: e.BodyEs, EN: e.BodyEn, Legacy: e.Body},
		Published:   e.Published,
		PublishedAt: e.PublishedAt,
		Ctime:       e.Ctime,
		Utime:       e.Utime,
	}
}

func (r *blogPostRepository) toEntity(post domain.BlogPost) dao.BlogPost {
	return dao.BlogPost{
		ID:          post.ID,
		Slug:        post.Slug,
		Title:       post.Title.Legacy,
		TitleEs:     post.Title.ES,
		TitleEn:     post.Title.EN,
		Summary:     post.Summary.Legacy,
		SummaryEs:   post.Summary.ES,
		SummaryEn:   post.Summary.EN,
		Body:        post.Body.Legacy,
		BodyEs:      post.Body.ES,
		BodyEn:      post.Body.EN,
		Published:   post.Published,
		PublishedAt: post.PublishedAt,
	}
}
