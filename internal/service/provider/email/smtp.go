package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"gitee.com/flycash/portfolio/internal/errs"
)

const (
	defaultSMTPPort    = 587
	defaultSendTimeout = 10 * time.Second
)

// SMTPConfig SMTP 连接配置
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // 发件人地址
	FromName string // 发件人显示名
	UseSSL   bool   // true 走 465 式的隐式 TLS，false 走 STARTTLS
	Timeout  time.Duration
}

var _ Client = (*SMTPClient)(nil)

// SMTPClient 基于 net/smtp 的邮件客户端
type SMTPClient struct {
	cfg SMTPConfig
}

// NewSMTPClient 创建 SMTP 邮件客户端
func NewSMTPClient(cfg SMTPConfig) *SMTPClient {
	if cfg.Port <= 0 {
		cfg.Port = defaultSMTPPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSendTimeout
	}
	return &SMTPClient{cfg: cfg}
}

// Send 发送一封邮件。整个会话受超时约束，下游挂死不会拖住调用方。
func (c *SMTPClient) Send(ctx context.Context, email Email) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	client, closeFn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendMailFailed, err)
	}
	defer closeFn()

	if c.cfg.Username != "" {
		auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: 认证失败: %w", errs.ErrSendMailFailed, err)
		}
	}

	if err := client.Mail(c.cfg.From); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendMailFailed, err)
	}
	if err := client.Rcpt(email.To); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendMailFailed, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendMailFailed, err)
	}
	if _, err := w.Write(c.buildMessage(email)); err != nil {
		_ = w.Close()
		return fmt.Errorf("%w: %w", errs.ErrSendMailFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendMailFailed, err)
	}
	return nil
}

// dial 建立 SMTP 会话，把 ctx 的截止时间落到底层连接上
func (c *SMTPClient) dial(ctx context.Context) (*smtp.Client, func(), error) {
	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("连接 %s 失败: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{ServerName: c.cfg.Host}

	if c.cfg.UseSSL {
		tlsConn := tls.Client(conn, tlsConfig)
		if err := tlsConn.Handshake(); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("TLS 握手失败: %w", err)
		}
		conn = tlsConn
	}

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	if !c.cfg.UseSSL {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				_ = client.Quit()
				_ = conn.Close()
				return nil, nil, fmt.Errorf("STARTTLS 失败: %w", err)
			}
		}
	}

	closeFn := func() {
		_ = client.Quit()
		_ = conn.Close()
	}
	return client, closeFn, nil
}

// buildMessage 构造 multipart/alternative 邮件：纯文本在前，HTML 在后
func (c *SMTPClient) buildMessage(email Email) []byte {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	from := c.cfg.From
	if c.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", c.cfg.FromName), c.cfg.From)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", email.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())

	writePart := func(contentType, body string) {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", contentType+"; charset=UTF-8")
		header.Set("Content-Transfer-Encoding", "quoted-printable")
		part, _ := mw.CreatePart(header)
		qp := quotedprintable.NewWriter(part)
		_, _ = qp.Write([]byte(body))
		_ = qp.Close()
	}

	if email.Text != "" {
		writePart("text/plain", email.Text)
	}
	if email.HTML != "" {
		writePart("text/html", email.HTML)
	}
	_ = mw.Close()

	return buf.Bytes()
}
