package repository

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/errs"
	"gitee.com/flycash/portfolio/internal/repository/cache"
	"gitee.com/flycash/portfolio/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm"
)

type SectionRepository interface {
	// List 返回全部板块，优先走缓存
	List(ctx context.Context) ([]domain.Section, error)
	// GetByCategory 返回单个板块，优先走缓存，不存在返回 ErrSectionNotFound
	GetByCategory(ctx context.Context, category string) (domain.Section, error)
	Save(ctx context.Context, sec domain.Section) (domain.Section, error)
	Delete(ctx context.Context, category string) error
}

// sectionRepository 板块仓库，数据库是唯一事实来源，缓存只是旁路加速
type sectionRepository struct {
	dao    dao.SectionDAO
	cache  *cache.ContentCache
	logger *elog.Component
}

// NewSectionRepository 创建板块仓库实例
func NewSectionRepository(sectionDao dao.SectionDAO, contentCache *cache.ContentCache) SectionRepository {
	return &sectionRepository{
		dao:    sectionDao,
		cache:  contentCache,
		logger: elog.DefaultLogger,
	}
}

// List 旁路缓存读：命中直接返回，未命中回源数据库再回填
func (r *sectionRepository) List(ctx context.Context) ([]domain.Section, error) {
	secs, err := r.cache.GetAll(ctx)
	if err == nil {
		return secs, nil
	}

	entities, err := r.dao.List(ctx)
	if err != nil {
		return nil, err
	}
	secs = make([]domain.Section, 0, len(entities))
	for _, e := range entities {
		secs = append(secs, r.toDomain(e))
	}

	// 回填失败只影响后面的命中率，不影响本次请求
	if err := r.cache.SetAll(ctx, secs); err != nil {
		r.logger.Error("回填全量板块缓存失败", elog.FieldErr(err))
	}
	return secs, nil
}

func (r *sectionRepository) GetByCategory(ctx context.Context, category string) (domain.Section, error) {
	sec, err := r.cache.GetCategory(ctx, category)
	if err == nil {
		return sec, nil
	}

	entity, err := r.dao.GetByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Section{}, fmt.Errorf("%w: %s", errs.ErrSectionNotFound, category)
		}
		return domain.Section{}, err
	}
	sec = r.toDomain(entity)

	if err := r.cache.SetCategory(ctx, sec); err != nil {
		r.logger.Error("回填板块缓存失败",
			elog.FieldErr(err),
			elog.String("category", category))
	}
	return sec, nil
}

// Save 写库后失效受影响的缓存键，下次读自然回填
func (r *sectionRepository) Save(ctx context.Context, sec domain.Section) (domain.Section, error) {
	sec.Category = sec.NormalizedCategory()
	entity, err := r.dao.Save(ctx, r.toEntity(sec))
	if err != nil {
		return domain.Section{}, err
	}
	r.cache.Invalidate(ctx, cache.SectionKey(sec.Category))
	return r.toDomain(entity), nil
}

// Delete 删库后清掉全部板块缓存，历史改名留下的键也一并处理
func (r *sectionRepository) Delete(ctx context.Context, category string) error {
	if err := r.dao.Delete(ctx, category); err != nil {
		return err
	}
	r.cache.InvalidateAll(ctx)
	return nil
}

func (r *sectionRepository) toDomain(e dao.Section) domain.Section {
	return domain.Section{
		ID:       e.ID,
		Category: e.Category,
		Title:    domain.BilingualText{ES: e.TitleEs, EN: e.TitleEn, Legacy: e.Title},
		Subtitle: domain.BilingualText{ES: e.SubtitleEs, EN: e.SubtitleEn, Legacy: e.Subtitle},
		Body:     domain.BilingualText{ES: e.BodyEs, EN: e.BodyEn, Legacy: e.Body},
		Order:    e.SortOrder,
		Ctime:    e.Ctime,
		Utime:    e.Utime,
	}
}

func (r *sectionRepository) toEntity(sec domain.Section) dao.Section {
	return dao.Section{
		ID:         sec.ID,
		Category:   sec.Category,
		Title:      sec.Title.Legacy,
		TitleEs:    sec.Title.ES,
		TitleEn:    sec.Title.EN,
		Subtitle:   sec.Subtitle.Legacy,
		SubtitleEs: sec.Subtitle.ES,
		SubtitleEn: sec.Subtitle.EN,
		Body:       sec.Body.Legacy,
		BodyEs:     sec.Body.ES,
		BodyEn:     sec.Body.EN,
		SortOrder:  sec.Order,
	}
}
