package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/errs"
	"gitee.com/flycash/portfolio/internal/pkg/kv"
	"gitee.com/flycash/portfolio/internal/repository/cache"
	"gitee.com/flycash/portfolio/internal/repository/dao"
	ca "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSectionDAO 内存版 SectionDAO，顺便数回源次数
type fakeSectionDAO struct {
	sections  map[string]dao.Section
	listCalls int
	getCalls  int
	nextID    int64
}

func newFakeSectionDAO(secs ...dao.Section) *fakeSectionDAO {
	f := &fakeSectionDAO{sections: make(map[string]dao.Section)}
	for _, s := range secs {
		f.nextID++
		s.ID = f.nextID
		f.sections[s.Category] = s
	}
	return f
}

func (f *fakeSectionDAO) List(_ context.Context) ([]dao.Section, error) {
	f.listCalls++
	out := make([]dao.Section, 0, len(f.sections))
	for _, s := range f.sections {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSectionDAO) GetByCategory(_ context.Context, category string) (dao.Section, error) {
	f.getCalls++
	s, ok := f.sections[category]
	if !ok {
		return dao.Section{}, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeSectionDAO) Save(_ context.Context, s dao.Section) (dao.Section, error) {
	if old, ok := f.sections[s.Category]; ok {
		s.ID = old.ID
	} else {
		f.nextID++
		s.ID = f.nextID
	}
	f.sections[s.Category] = s
	return s, nil
}

func (f *fakeSectionDAO) Delete(_ context.Context, category string) error {
	delete(f.sections, category)
	return nil
}

// brokenStore 所有操作都失败的键值存储，模拟 Redis 整体不可用
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Del(context.Context, ...string) error {
	return errors.New("connection refused")
}

func (brokenStore) ScanKeys(context.Context, string) ([]string, error) {
	return nil, errors.New("connection refused")
}

func newTestRepo(d dao.SectionDAO, store kv.Store) SectionRepository {
	return NewSectionRepository(d, cache.NewContentCache(store, time.Hour))
}

func newMemoryStore() kv.Store {
	return kv.NewMemoryStore(ca.New(time.Minute, time.Minute))
}

func aboutSection() dao.Section {
	return dao.Section{
		Category: "about",
		TitleEs:  "Sobre mí",
		TitleEn:  "About me",
		BodyEs:   "Hola",
		BodyEn:   "Hello",
	}
}

func TestSectionRepository_ListCacheAside(t *testing.T) {
	t.Parallel()
	fake := newFakeSectionDAO(aboutSection())
	repo := newTestRepo(fake, newMemoryStore())
	ctx := t.Context()

	secs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, secs, 1)
	assert.Equal(t, 1, fake.listCalls)

	// 第二次命中缓存，不回源
	secs, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, secs, 1)
	assert.Equal(t, 1, fake.listCalls)
}

func TestSectionRepository_GetByCategory(t *testing.T) {
	t.Parallel()
	fake := newFakeSectionDAO(aboutSection())
	repo := newTestRepo(fake, newMemoryStore())
	ctx := t.Context()

	sec, err := repo.GetByCategory(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "Sobre mí", sec.Title.ES)
	assert.Equal(t, 1, fake.getCalls)

	_, err = repo.GetByCategory(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.getCalls)

	_, err = repo.GetByCategory(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrSectionNotFound)
}

func TestSectionRepository_SaveInvalidates(t *testing.T) {
	t.Parallel()
	fake := newFakeSectionDAO(aboutSection())
	repo := newTestRepo(fake, newMemoryStore())
	ctx := t.Context()

	// 预热两个缓存键
	_, err := repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.GetByCategory(ctx, "about")
	require.NoError(t, err)

	_, err = repo.Save(ctx, domain.Section{
		Category: "About",
		Title:    domain.BilingualText{ES: "Nuevo", EN: "New"},
	})
	require.NoError(t, err)

	// 单板块键和全量键都要失效，下次读回源拿到新值
	sec, err := repo.GetByCategory(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", sec.Title.ES)
	assert.Equal(t, 2, fake.getCalls)

	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.listCalls)
}

func TestSectionRepository_DeleteInvalidatesAll(t *testing.T) {
	t.Parallel()
	fake := newFakeSectionDAO(aboutSection(), dao.Section{Category: "skills", TitleEn: "Skills"})
	repo := newTestRepo(fake, newMemoryStore())
	ctx := t.Context()

	_, err := repo.GetByCategory(ctx, "about")
	require.NoError(t, err)
	_, err = repo.GetByCategory(ctx, "skills")
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "skills"))

	// 没删的板块也要重新回源，因为全量缓存整个被清了
	secs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, secs, 1)
	assert.Equal(t, 2, fake.listCalls)

	_, err = repo.GetByCategory(ctx, "skills")
	assert.ErrorIs(t, err, errs.ErrSectionNotFound)
}

func TestSectionRepository_StoreDownFallsThrough(t *testing.T) {
	t.Parallel()
	fake := newFakeSectionDAO(aboutSection())
	repo := newTestRepo(fake, brokenStore{})
	ctx := t.Context()

	// 存储整个不可用，读写都照常工作，只是每次回源
	for i := 0; i < 3; i++ {
		secs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, secs, 1)
	}
	assert.Equal(t, 3, fake.listCalls)

	_, err := repo.Save(ctx, domain.Section{Category: "skills"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "skills"))
}

func TestSectionRepository_CorruptCacheValue(t *testing.T) {
	t.Parallel()
	fake := newFakeSectionDAO(aboutSection())
	store := newMemoryStore()
	repo := newTestRepo(fake, store)
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, cache.AllSectionsKey, "{not json", time.Hour))

	// 脏数据当未命中处理
	secs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, secs, 1)
	assert.Equal(t, 1, fake.listCalls)
}
