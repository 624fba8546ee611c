package queue

import (
	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 资金相关通知队列
	CriticalQueue = constants.QueueCritical

	payoutNotifyMaxRetry = 5
	defaultConcurrency   = 10
)

// Client 队列客户端，未启用时 inner 为 nil，入队直接跳过
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueuePayoutStatusNotify 推送结算单状态通知，完成与失败进入 critical 队列
func (c *Client) EnqueuePayoutStatusNotify(payload PayoutStatusNotifyPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewPayoutStatusNotifyTask(payload)
	if err != nil {
		return err
	}
	base := []asynq.Option{
		asynq.Queue(queueForPayoutEvent(payload.Event, DefaultQueue)),
		asynq.MaxRetry(payoutNotifyMaxRetry),
	}
	_, err = c.inner.Enqueue(task, append(base, opts...)...)
	return err
}

func queueForPayoutEvent(event, fallback string) string {
	if event == PayoutEventCompleted || event == PayoutEventFailed {
		return CriticalQueue
	}
	return fallback
}

// BuildServerConfig 生成 worker 端的连接与并发配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1, CriticalQueue: 2},
	}
	if cfg == nil {
		return redisOpt(&config.QueueConfig{}), serverCfg
	}
	if cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
