package cache

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/errs"
	"gitee.com/flycash/portfolio/internal/pkg/kv"
	kvmocks "gitee.com/flycash/portfolio/internal/pkg/kv/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSectionKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "section_about", SectionKey("about"))
	// 键名大小写不敏感，统一小写
	assert.Equal(t, "section_about", SectionKey("About"))
}

func TestContentCache_MissAndHit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	store := kvmocks.NewMockStore(ctrl)
	c := NewContentCache(store, time.Hour)
	ctx := t.Context()

	store.EXPECT().
		Get(gomock.Any(), AllSectionsKey).
		Return("", kv.ErrKeyNotFound)

	_, err := c.GetAll(ctx)
	assert.ErrorIs(t, err, errs.ErrCacheKeyNotFound)

	secs := []domain.Section{{Category: "about", Title: domain.BilingualText{EN: "About"}}}
	data, err := json.Marshal(secs)
	require.NoError(t, err)

	store.EXPECT().
		Get(gomock.Any(), AllSectionsKey).
		Return(string(data), nil)

	got, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, secs, got)
}

// 存储故障对调用方表现成未命中，不往外抛基础设施错误
func TestContentCache_StoreErrorLooksLikeMiss(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	store := kvmocks.NewMockStore(ctrl)
	c := NewContentCache(store, time.Hour)

	store.EXPECT().
		Get(gomock.Any(), SectionKey("about")).
		Return("", errors.New("connection refused"))

	_, err := c.GetCategory(t.Context(), "about")
	assert.ErrorIs(t, err, errs.ErrCacheKeyNotFound)
}

func TestContentCache_SetCategory(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	store := kvmocks.NewMockStore(ctrl)
	c := NewContentCache(store, time.Hour)

	sec := domain.Section{Category: "about", Title: domain.BilingualText{ES: "Sobre mí"}}
	data, err := json.Marshal(sec)
	require.NoError(t, err)

	store.EXPECT().
		Set(gomock.Any(), SectionKey("about"), string(data), time.Hour).
		Return(nil)

	require.NoError(t, c.SetCategory(t.Context(), sec))
}

// 任何板块失效都必须连带失效全量键
func TestContentCache_InvalidateAlwaysIncludesAllKey(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	store := kvmocks.NewMockStore(ctrl)
	c := NewContentCache(store, time.Hour)

	store.EXPECT().
		Del(gomock.Any(), SectionKey("about"), AllSectionsKey).
		Return(nil)

	c.Invalidate(t.Context(), SectionKey("about"))
}

// 删除失败只记日志不抛错，写路径不被缓存故障拖垮
func TestContentCache_InvalidateSwallowsError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	store := kvmocks.NewMockStore(ctrl)
	c := NewContentCache(store, time.Hour)

	store.EXPECT().
		Del(gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))

	c.Invalidate(t.Context())
}

func TestContentCache_InvalidateAll(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	store := kvmocks.NewMockStore(ctrl)
	c := NewContentCache(store, time.Hour)

	store.EXPECT().
		ScanKeys(gomock.Any(), "section_").
		Return([]string{"section_about", "section_skills"}, nil)
	store.EXPECT().
		Del(gomock.Any(), "section_about", "section_skills", AllSectionsKey).
		Return(nil)

	c.InvalidateAll(t.Context())
}

// 扫描失败时至少还要把全量键删掉
func TestContentCache_InvalidateAllScanFails(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	store := kvmocks.NewMockStore(ctrl)
	c := NewContentCache(store, time.Hour)

	store.EXPECT().
		ScanKeys(gomock.Any(), "section_").
		Return(nil, errors.New("connection refused"))
	store.EXPECT().
		Del(gomock.Any(), AllSectionsKey).
		Return(nil)

	c.InvalidateAll(t.Context())
}
