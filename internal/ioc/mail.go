package ioc

import (
	"gitee.com/flycash/portfolio/internal/service/provider/email"
	"github.com/gotomicro/ego/core/econf"
)

// InitMailClient 初始化 SMTP 客户端，并包一层指标采集
func InitMailClient() email.Client {
	var cfg email.SMTPConfig
	if err := econf.UnmarshalKey("smtp", &cfg); err != nil {
		panic(err)
	}
	return email.NewMetricsClient(email.NewSMTPClient(cfg))
}
