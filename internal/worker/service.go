package worker

import (
	"context"
	"errors"
	"time"

	"github.com/vendorhub/payout/internal/config"
	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	payoutDueCheckInterval = time.Hour
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.PayoutService != nil {
		go s.runPayoutDueLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runPayoutDueLoop 每个结算日只推送一次到期提醒
func (s *Service) runPayoutDueLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.PayoutService == nil {
		return
	}
	checker := newDueReminder(s.consumer.PayoutService.Location())
	runOnce := func() {
		now := time.Now()
		if !checker.shouldRun(now) {
			return
		}
		count, err := s.consumer.PayoutService.NotifyDuePayouts(ctx, now)
		if err != nil {
			logger.Warnw("worker_payout_due_notify_failed", "error", err)
			return
		}
		checker.markRun(now)
		logger.Infow("worker_payout_due_notified", "count", count)
	}
	runOnce()

	ticker := time.NewTicker(payoutDueCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

type dueReminder struct {
	location *time.Location
	lastDate string
}

func newDueReminder(loc *time.Location) *dueReminder {
	if loc == nil {
		loc = time.UTC
	}
	return &dueReminder{location: loc}
}

func (d *dueReminder) shouldRun(now time.Time) bool {
	return now.In(d.location).Format(constants.DateLayout) != d.lastDate
}

func (d *dueReminder) markRun(now time.Time) {
	d.lastDate = now.In(d.location).Format(constants.DateLayout)
}
