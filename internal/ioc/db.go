package ioc

import (
	"fmt"

	"gitee.com/flycash/portfolio/internal/repository/dao"
	"github.com/gotomicro/ego/core/econf"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接并建表
func InitDB() *gorm.DB {
	type Config struct {
		DSN string
	}
	var cfg Config
	if err := econf.UnmarshalKey("mysql", &cfg); err != nil {
		panic(err)
	}
	if cfg.DSN == "" {
		cfg.DSN = "root:root@tcp(localhost:3306)/portfolio?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=True&loc=Local&timeout=1s&readTimeout=3s&writeTimeout=3s"
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(fmt.Errorf("数据库连接失败: %w", err))
	}

	err = db.AutoMigrate(
		&dao.Section{},
		&dao.BlogPost{},
		&dao.Subscriber{},
		&dao.ContactMessage{},
	)
	if err != nil {
		panic(fmt.Errorf("建表失败: %w", err))
	}
	return db
}
