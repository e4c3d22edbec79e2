package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Subscriber 订阅者表
type Subscriber struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	Email            string `gorm:"type:VARCHAR(256);uniqueIndex;comment:'小写邮箱'"`
	Language         string `gorm:"type:ENUM('es', 'en');DEFAULT:'es'"`
	UnsubscribeToken string `gorm:"type:VARCHAR(64);uniqueIndex"`
	Unsubscribed     bool   `gorm:"type:TINYINT(1);DEFAULT:0;index"`
	Ctime            int64
	Utime            int64
}

// TableName 重命名表
func (Subscriber) TableName() string {
	return "subscribers"
}

type SubscriberDAO interface {
	ListActive(ctx context.Context) ([]Subscriber, error)
	GetByToken(ctx context.Context, token string) (Subscriber, error)
	// Upsert 按邮箱冲突时更新语言并重置退订状态
	Upsert(ctx context.Context, sub Subscriber) (Subscriber, error)
	MarkUnsubscribed(ctx context.Context, id int64) error
}

type subscriberDAO struct {
	db *gorm.DB
}

// NewSubscriberDAO 创建SubscriberDAO实例
func NewSubscriberDAO(db *gorm.DB) SubscriberDAO {
	return &subscriberDAO{db: db}
}

// ListActive 返回未退订的订阅者
func (d *subscriberDAO) ListActive(ctx context.Context) ([]Subscriber, error) {
	var subs []Subscriber
	err := d.db.WithContext(ctx).
		Where("unsubscribed = ?", false).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (d *subscriberDAO) GetByToken(ctx context.Context, token string) (Subscriber, error) {
	var sub Subscriber
	err := d.db.WithContext(ctx).
		Where("unsubscribe_token = ?", token).
		First(&sub).Error
	if err != nil {
		return Subscriber{}, err
	}
	return sub, nil
}

func (d *subscriberDAO) Upsert(ctx context.Context, sub Subscriber) (Subscriber, error) {
	now := time.Now().UnixMilli()
	sub.Ctime = now
	sub.Utime = now
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"language", "unsubscribed", "utime"}),
	}).Create(&sub).Error
	if err != nil {
		return Subscriber{}, err
	}
	return sub, nil
}

// MarkUnsubscribed 标记退订，记录保留
func (d *subscriberDAO) MarkUnsubscribed(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Model(&Subscriber{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"unsubscribed": true,
			"utime":        time.Now().UnixMilli(),
		}).Error
}
