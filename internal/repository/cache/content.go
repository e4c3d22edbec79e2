package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/errs"
	"gitee.com/flycash/portfolio/internal/pkg/kv"
	"github.com/gotomicro/ego/core/elog"
)

const (
	// AllSectionsKey 全量内容缓存键。线上已有部署依赖这两个键名，不能改。
	AllSectionsKey   = "all_sections"
	sectionKeyPrefix = "section_"

	// DefaultTTL 缓存过期时间。给得很长，因为新鲜度靠写路径主动失效保证，
	// 过期只是兜底。
	DefaultTTL = 30 * 24 * time.Hour

	defaultStoreTimeout = 3 * time.Second
)

// SectionKey 单个板块的缓存键
func SectionKey(category string) string {
	return sectionKeyPrefix + strings.ToLower(category)
}

// ContentCache 内容的旁路缓存。纯优化层：键值存储整个不可用时，
// 所有方法都表现成未命中/无操作，调用方照常回源，绝不把缓存故障
// 当成内容故障抛出去。
type ContentCache struct {
	store   kv.Store
	ttl     time.Duration
	timeout time.Duration
	logger  *elog.Component
}

// NewContentCache 创建内容缓存
func NewContentCache(store kv.Store, ttl time.Duration) *ContentCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ContentCache{
		store:   store,
		ttl:     ttl,
		timeout: defaultStoreTimeout,
		logger:  elog.DefaultLogger,
	}
}

// GetAll 读取全量板块缓存，未命中或存储故障都返回 ErrCacheKeyNotFound
func (c *ContentCache) GetAll(ctx context.Context) ([]domain.Section, error) {
	var secs []domain.Section
	if err := c.get(ctx, AllSectionsKey, &secs); err != nil {
		return nil, err
	}
	return secs, nil
}

// SetAll 回填全量板块缓存
func (c *ContentCache) SetAll(ctx context.Context, secs []domain.Section) error {
	return c.set(ctx, AllSectionsKey, secs)
}

// GetCategory 读取单个板块缓存
func (c *ContentCache) GetCategory(ctx context.Context, category string) (domain.Section, error) {
	var sec domain.Section
	if err := c.get(ctx, SectionKey(category), &sec); err != nil {
		return domain.Section{}, err
	}
	return sec, nil
}

// SetCategory 回填单个板块缓存
func (c *ContentCache) SetCategory(ctx context.Context, sec domain.Section) error {
	return c.set(ctx, SectionKey(sec.Category), sec)
}

// Invalidate 删除指定的键。全量键是所有板块的超集视图，
// 任何板块变更后都不允许它继续存活，所以这里总是带上它一起删。
// 删除失败只记日志：最坏情况是最长一个 TTL 的陈旧数据，不是正确性问题。
func (c *ContentCache) Invalidate(ctx context.Context, keys ...string) {
	keys = append(keys, AllSectionsKey)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.store.Del(ctx, keys...); err != nil {
		c.logger.Error("删除缓存键失败",
			elog.FieldErr(err),
			elog.Any("keys", keys))
	}
}

// InvalidateAll 清掉全部板块缓存，板块删除或者改名时用
func (c *ContentCache) InvalidateAll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	keys, err := c.store.ScanKeys(ctx, sectionKeyPrefix)
	if err != nil {
		c.logger.Error("扫描缓存键失败", elog.FieldErr(err))
		keys = nil
	}
	keys = append(keys, AllSectionsKey)
	if err := c.store.Del(ctx, keys...); err != nil {
		c.logger.Error("删除缓存键失败",
			elog.FieldErr(err),
			elog.Any("keys", keys))
	}
}

func (c *ContentCache) get(ctx context.Context, key string, val any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			// 基础设施故障等同未命中，调用方回源
			c.logger.Error("读缓存失败",
				elog.FieldErr(err),
				elog.String("key", key))
		}
		return fmt.Errorf("%w: %s", errs.ErrCacheKeyNotFound, key)
	}
	if err := json.Unmarshal([]byte(raw), val); err != nil {
		c.logger.Error("缓存值反序列化失败",
			elog.FieldErr(err),
			elog.String("key", key))
		return fmt.Errorf("%w: %s", errs.ErrCacheKeyNotFound, key)
	}
	return nil
}

func (c *ContentCache) set(ctx context.Context, key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("缓存值序列化失败: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.store.Set(ctx, key, string(data), c.ttl)
}
