package notification

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/repository"
	"gitee.com/flycash/portfolio/internal/service/provider/email"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 8
	defaultSendTimeout = 10 * time.Second
)

// Dispatcher 文章发布后的新闻邮件群发器
type Dispatcher interface {
	// Dispatch 给当前所有活跃订阅者各发一封邮件，返回成功数。
	// 单个收件人失败只记日志不中断，也不回滚已发出的邮件；
	// 只有订阅者列表本身加载失败才返回错误。
	Dispatch(ctx context.Context, post domain.BlogPost) (int, error)
}

// dispatcher 尽力而为的群发实现。没有队列，没有重试：
// 发送失败的那封就丢了，除非人工重新触发整次群发。这是接受的取舍。
type dispatcher struct {
	subscriberRepo repository.SubscriberRepository
	client         email.Client
	baseURL        string // 退订链接的站点地址
	concurrency    int
	sendTimeout    time.Duration
	logger         *elog.Component
}

// NewDispatcher 创建新闻邮件群发器
func NewDispatcher(subscriberRepo repository.SubscriberRepository, client email.Client, baseURL string) Dispatcher {
	return &dispatcher{
		subscriberRepo: subscriberRepo,
		client:         client,
		baseURL:        baseURL,
		concurrency:    defaultConcurrency,
		sendTimeout:    defaultSendTimeout,
		logger:         elog.DefaultLogger,
	}
}

// Dispatch 群发一篇文章
func (d *dispatcher) Dispatch(ctx context.Context, post domain.BlogPost) (int, error) {
	// 发送前实时取快照，不缓存：刚退订的人绝不能再收到邮件
	subs, err := d.subscriberRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	if len(subs) == 0 {
		return 0, nil
	}

	var (
		sent    atomic.Int64
		mu      sync.Mutex
		sendErr *multierror.Error
	)

	// 故意不用 errgroup.WithContext：一个收件人失败不应该取消其余发送
	var eg errgroup.Group
	eg.SetLimit(d.concurrency)
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
			defer cancel()

			msg := renderNewsletter(post, sub, d.baseURL)
			if err1 := d.client.Send(sendCtx, msg); err1 != nil {
				d.logger.Error("给订阅者发送邮件失败",
					elog.FieldErr(err1),
					elog.String("recipient", sub.Email))
				mu.Lock()
				sendErr = multierror.Append(sendErr, err1)
				mu.Unlock()
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = eg.Wait()

	if sendErr != nil {
		d.logger.Warn("本次群发存在失败的收件人",
			elog.Int("total", len(subs)),
			elog.Int("sent", int(sent.Load())),
			elog.FieldErr(sendErr.ErrorOrNil()))
	}
	return int(sent.Load()), nil
}
