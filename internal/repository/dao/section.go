package dao

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Section 内容板块表
type Section struct {
	ID         int64  `gorm:"primaryKey;autoIncrement;comment:'板块ID'"`
	Category   string `gorm:"type:VARCHAR(64);uniqueIndex;comment:'板块标识，小写'"`
	Title      string `gorm:"type:VARCHAR(256);comment:'遗留的未翻译标题'"`
	TitleEs    string `gorm:"type:VARCHAR(256);comment:'西语标题'"`
	TitleEn    string `gorm:"type:VARCHAR(256);comment:'英语标题'"`
	Subtitle   string `gorm:"type:VARCHAR(512)"`
	SubtitleEs string `gorm:"type:VARCHAR(512)"`
	SubtitleEn string `gorm:"type:VARCHAR(512)"`
	Body       string `gorm:"type:TEXT"`
	BodyEs     string `gorm:"type:TEXT"`
	BodyEn     string `gorm:"type:TEXT"`
	SortOrder  int    `gorm:"type:INT;DEFAULT:0;comment:'展示顺序'"`
	Ctime      int64
	Utime      int64
}

// TableName 重命名表
func (Section) TableName() string {
	return "sections"
}

type SectionDAO interface {
	List(ctx context.Context) ([]Section, error)
	GetByCategory(ctx context.Context, category string) (Section, error)
	Save(ctx context.Context, s Section) (Section, error)
	Delete(ctx context.Context, category string) error
}

type sectionDAO struct {
	db *gorm.DB
}

// NewSectionDAO 创建SectionDAO实例
func NewSectionDAO(db *gorm.DB) SectionDAO {
	return &sectionDAO{db: db}
}

// List 按展示顺序返回全部板块
func (d *sectionDAO) List(ctx context.Context) ([]Section, error) {
	var secs []Section
	err := d.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&secs).Error
	if err != nil {
		return nil, errors.Wrap(err, "查询板块列表失败")
	}
	return secs, nil
}

func (d *sectionDAO) GetByCategory(ctx context.Context, category string) (Section, error) {
	var sec Section
	err := d.db.WithContext(ctx).
		Where("category = ?", category).
		First(&sec).Error
	if err != nil {
		return Section{}, err
	}
	return sec, nil
}

// Save 保存板块，按 category 冲突时更新
func (d *sectionDAO) Save(ctx context.Context, s Section) (Section, error) {
	now := time.Now().UnixMilli()
	s.Ctime = now
	s.Utime = now
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns(sectionUpdateColumns),
	}).Create(&s).Error
	if err != nil {
		return Section{}, errors.Wrap(err, "保存板块失败")
	}
	return s, nil
}

func (d *sectionDAO) Delete(ctx context.Context, category string) error {
	return d.db.WithContext(ctx).
		Where("category = ?", category).
		Delete(&Section{}).Error
}

var sectionUpdateColumns = []string{
	"title", "title_es", "title_en",
	"subtitle", "subtitle_es", "subtitle_en",
	"body", "body_es", "body_en",
	"sort_order", "utime",
}
