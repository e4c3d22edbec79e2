package ioc

import (
	"gitee.com/flycash/portfolio/internal/service/contact"
	"github.com/gotomicro/ego/core/econf"
)

// InitContactConfig 联系表单配置，没配的阈值用默认值
func InitContactConfig() contact.Config {
	type Config struct {
		IPHourLimit     int
		IPDayLimit      int
		EmailHourLimit  int
		EmailDayLimit   int
		GlobalHourLimit int
		OwnerEmail      string
	}
	var raw Config
	if err := econf.UnmarshalKey("contact", &raw); err != nil {
		panic(err)
	}
	cfg := contact.DefaultConfig()
	if raw.IPHourLimit > 0 {
		cfg.IPHourLimit = raw.IPHourLimit
	}
	if raw.IPDayLimit > 0 {
		cfg.IPDayLimit = raw.IPDayLimit
	}
	if raw.EmailHourLimit > 0 {
		cfg.EmailHourLimit = raw.EmailHourLimit
	}
	if raw.EmailDayLimit > 0 {
		cfg.EmailDayLimit = raw.EmailDayLimit
	}
	if raw.GlobalHourLimit > 0 {
		cfg.GlobalHourLimit = raw.GlobalHourLimit
	}
	cfg.OwnerEmail = raw.OwnerEmail
	return cfg
}

// InitBaseURL 对外站点地址，用于拼邮件里的文章链接和退订链接
func InitBaseURL() string {
	type Config struct {
		BaseURL string
	}
	var cfg Config
	if err := econf.UnmarshalKey("site", &cfg); err != nil {
		panic(err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	return cfg.BaseURL
}
