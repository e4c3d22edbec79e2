package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/pkg/ratelimit"
	"gitee.com/flycash/portfolio/internal/repository"
	"gitee.com/flycash/portfolio/internal/service/provider/email"
	"github.com/gotomicro/ego/core/elog"
	"github.com/sony/sonyflake"
)

// Config 联系表单的限流阈值，都是策略旋钮，可以按部署覆盖
type Config struct {
	IPHourLimit     int
	IPDayLimit      int
	EmailHourLimit  int
	EmailDayLimit   int
	GlobalHourLimit int

	OwnerEmail string // 留言通知发给谁
}

// DefaultConfig 默认阈值
func DefaultConfig() Config {
	return Config{
		IPHourLimit:     3,
		IPDayLimit:      5,
		EmailHourLimit:  2,
		EmailDayLimit:   3,
		GlobalHourLimit: 10,
	}
}

// Service 联系表单提交
type Service interface {
	// Submit 提交一条留言。限流拒绝是预期结果，通过 Decision 返回而不是 error；
	// error 只表示留言本身没能保存。
	Submit(ctx context.Context, msg domain.ContactMessage) (domain.RateLimitDecision, error)
}

type service struct {
	limiter ratelimit.Limiter
	repo    repository.ContactMessageRepository
	client  email.Client
	idGen   *sonyflake.Sonyflake
	cfg     Config
	logger  *elog.Component
}

// NewService 创建联系表单服务
func NewService(
	limiter ratelimit.Limiter,
	repo repository.ContactMessageRepository,
	client email.Client,
	idGen *sonyflake.Sonyflake,
	cfg Config,
) Service {
	return &service{
		limiter: limiter,
		repo:    repo,
		client:  client,
		idGen:   idGen,
		cfg:     cfg,
		logger:  elog.DefaultLogger,
	}
}

// Submit 提交留言
func (s *service) Submit(ctx context.Context, msg domain.ContactMessage) (domain.RateLimitDecision, error) {
	if err := msg.Validate(); err != nil {
		return domain.RateLimitDecision{}, err
	}

	decision := s.checkAndConsume(ctx, msg.IP, msg.Email)
	if !decision.Allowed {
		return decision, nil
	}

	id, err := s.idGen.NextID()
	if err != nil {
		return domain.RateLimitDecision{}, fmt.Errorf("生成留言ID失败: %w", err)
	}
	msg.ID = int64(id)

	saved, err := s.repo.Create(ctx, msg)
	if err != nil {
		return domain.RateLimitDecision{}, err
	}

	// 站长通知是锦上添花：发送失败只记日志，留言已经落库，提交算成功
	if err := s.client.Send(ctx, s.renderOwnerMail(saved)); err != nil {
		s.logger.Error("发送留言通知邮件失败",
			elog.FieldErr(err),
			elog.Any("messageID", saved.ID))
	}
	return domain.Allow(), nil
}

// checkAndConsume 检查五个窗口并消耗额度。
// 限流存储不可用时放行：联系表单的可用性优先级高于防滥用。
func (s *service) checkAndConsume(ctx context.Context, ip, emailAddr string) domain.RateLimitDecision {
	windows := s.windows(ip, emailAddr)
	res, err := s.limiter.Acquire(ctx, windows)
	if err != nil {
		s.logger.Error("限流器不可用，放行请求", elog.FieldErr(err))
		return domain.Allow()
	}
	if res.Allowed {
		return domain.Allow()
	}
	return domain.Deny(windows[res.DeniedIndex].Name, res.RetryAfter)
}

// windows 五个窗口的定义。顺序决定对外暴露哪个拒绝原因，必须保持稳定：
// ip-hour, ip-day, email-hour, email-day, global。
func (s *service) windows(ip, emailAddr string) []ratelimit.Window {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	return []ratelimit.Window{
		{Name: "ip-hour", Key: "ip:" + ip, Limit: s.cfg.IPHourLimit, Interval: time.Hour},
		{Name: "ip-day", Key: "ip-daily:" + ip, Limit: s.cfg.IPDayLimit, Interval: 24 * time.Hour},
		{Name: "email-hour", Key: "email:" + emailAddr, Limit: s.cfg.EmailHourLimit, Interval: time.Hour},
		{Name: "email-day", Key: "email-daily:" + emailAddr, Limit: s.cfg.EmailDayLimit, Interval: 24 * time.Hour},
		{Name: "global", Key: "global", Limit: s.cfg.GlobalHourLimit, Interval: time.Hour},
	}
}

func (s *service) renderOwnerMail(msg domain.ContactMessage) email.Email {
	subject := fmt.Sprintf("Nuevo mensaje de contacto de %s", msg.Name)
	text := fmt.Sprintf("Nombre: %s\nEmail: %s\nIP: %s\n\n%s\n",
		msg.Name, msg.Email, msg.IP, msg.Message)
	return email.Email{
		To:      s.cfg.OwnerEmail,
		Subject: subject,
		Text:    text,
	}
}
