package dao

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlogPost 博客文章表
type BlogPost struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Slug        string `gorm:"type:VARCHAR(128);uniqueIndex"`
	Title       string `gorm:"type:VARCHAR(256)"`
	TitleEs     string `gorm:"type:VARCHAR(256)"`
	TitleEn     string `gorm:"type:VARCHAR(256)"`
	Summary     string `gorm:"type:TEXT"`
	SummaryEs   string `gorm:"type:TEXT"`
	SummaryEn   string `gorm:"type:TEXT"`
	Body        string `gorm:"type:LONGTEXT"`
	BodyEs      string `gorm:"type:LONGTEXT"`
	BodyEn      string `gorm:"type:LONGTEXT"`
	Published   bool   `gorm:"type:TINYINT(1);DEFAULT:0;index"`
	PublishedAt int64  `gorm:"type:BIGINT;DEFAULT:0"`
	Ctime       int64
	Utime       int64
}

// TableName 重命名表
func (BlogPost) TableName() string {
	return "blog_posts"
}

type BlogPostDAO interface {
	GetByID(ctx context.Context, id int64) (BlogPost, error)
	ListPublished(ctx context.Context) ([]BlogPost, error)
	Save(ctx context.Context, post BlogPost) (BlogPost, error)
	MarkPublished(ctx context.Context, id, publishedAt int64) error
}

type blogPostDAO struct {
	db *gorm.DB
}

// NewBlogPostDAO 创建BlogPostDAO实例
func NewBlogPostDAO(db *gorm.DB) BlogPostDAO {
	return &blogPostDAO{db: db}
}

func (d *blogPostDAO) GetByID(ctx context.Context, id int64) (BlogPost, error) {
	var post BlogPost
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return BlogPost{}, err
	}
	return post, nil
}

// ListPublished 按发布时间倒序返回已发布文章
func (d *blogPostDAO) ListPublished(ctx context.Context) ([]BlogPost, error) {
	var posts []BlogPost
	err := d.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "查询文章列表失败")
	}
	return posts, nil
}

// Save 保存文章，按 slug 冲突时更新
func (d *blogPostDAO) Save(ctx context.Context, post BlogPost) (BlogPost, error) {
	now := time.Now().UnixMilli()
	post.Ctime = now
	post.Utime = now
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns(blogPostUpdateColumns),
	}).Create(&post).Error
	if err != nil {
		return BlogPost{}, errors.Wrap(err, "保存文章失败")
	}
	return post, nil
}

// MarkPublished 把文章置为已发布
func (d *blogPostDAO) MarkPublished(ctx context.Context, id, publishedAt int64) error {
	return d.db.WithContext(ctx).Model(&BlogPost{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"published":    true,
			"published_at": publishedAt,
			"utime":        time.Now().UnixMilli(),
		}).Error
}

var blogPostUpdateColumns = []string{
	"title", "title_es", "title_en",
	"summary", "summary_es", "summary_en",
	"body", "body_es", "body_en",
	"utime",
}
