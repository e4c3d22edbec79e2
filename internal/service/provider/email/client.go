package email

import (
	"context"
)

// Email 一封待发送的邮件，正文同时带 HTML 和纯文本两个版本
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Client 邮件发送客户端。
// 进程内共享一个实例，所有组件复用同一个传输配置。
//
//go:generate mockgen -source=./client.go -package=emailmocks -destination=./mocks/client.mock.go Client
type Client interface {
	// Send 发送一封邮件
	Send(ctx context.Context, email Email) error
}
