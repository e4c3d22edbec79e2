// MetricsClient 为邮件客户端添加指标收集的装饰器
package email

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSucceeded = "SUCCEEDED"
	statusFailed    = "FAILED"
)

var _ Client = (*MetricsClient)(nil)

// MetricsClient 带指标收集的邮件客户端装饰器
type MetricsClient struct {
	client              Client
	sendDurationSummary *prometheus.SummaryVec
	sendCounter         *prometheus.CounterVec
}

// NewMetricsClient 创建一个新的带有指标收集的邮件客户端
func NewMetricsClient(client Client) *MetricsClient {
	sendDurationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "mail_send_duration_seconds",
			Help:       "邮件发送耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"status"},
	)

	sendCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_send_total",
			Help: "邮件发送总数",
		},
		[]string{"status"},
	)

	// 注册指标
	prometheus.MustRegister(sendDurationSummary, sendCounter)

	return &MetricsClient{
		client:              client,
		sendDurationSummary: sendDurationSummary,
		sendCounter:         sendCounter,
	}
}

// Send 发送邮件并记录指标
func (c *MetricsClient) Send(ctx context.Context, email Email) error {
	startTime := time.Now()

	err := c.client.Send(ctx, email)

	status := statusSucceeded
	if err != nil {
		status = statusFailed
	}
	c.sendCounter.WithLabelValues(status).Inc()
	c.sendDurationSummary.WithLabelValues(status).Observe(time.Since(startTime).Seconds())

	return err
}
