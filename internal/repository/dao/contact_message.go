package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/portfolio/internal/errs"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ContactMessage 联系表单留言表
type ContactMessage struct {
	ID      int64  `gorm:"primaryKey;comment:'留言ID，雪花算法生成'"`
	Name    string `gorm:"type:VARCHAR(128)"`
	Email   string `gorm:"type:VARCHAR(256);index"`
	Message string `gorm:"type:TEXT"`
	IP      string `gorm:"type:VARCHAR(64);index"`
	Ctime   int64
}

// TableName 重命名表
func (ContactMessage) TableName() string {
	return "contact_messages"
}

type ContactMessageDAO interface {
	Create(ctx context.Context, msg ContactMessage) (ContactMessage, error)
	ListRecent(ctx context.Context, limit int) ([]ContactMessage, error)
}

type contactMessageDAO struct {
	db *gorm.DB
}

// NewContactMessageDAO 创建ContactMessageDAO实例
func NewContactMessageDAO(db *gorm.DB) ContactMessageDAO {
	return &contactMessageDAO{db: db}
}

func (d *contactMessageDAO) Create(ctx context.Context, msg ContactMessage) (ContactMessage, error) {
	msg.Ctime = time.Now().UnixMilli()
	err := d.db.WithContext(ctx).Create(&msg).Error
	if err != nil {
		if d.isUniqueConstraintError(err) {
			// ID 是雪花算法生成的，冲突意味着发号器时钟回拨了
			return ContactMessage{}, fmt.Errorf("%w", errs.ErrContactDuplicate)
		}
		return ContactMessage{}, err
	}
	return msg, nil
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func (d *contactMessageDAO) isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

// ListRecent 给后台看的最近留言
func (d *contactMessageDAO) ListRecent(ctx context.Context, limit int) ([]ContactMessage, error) {
	var msgs []ContactMessage
	err := d.db.WithContext(ctx).
		Order("ctime DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
