package worker

import (
	"context"
	"errors"

	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/provider"
	"github.com/vendorhub/payout/internal/queue"
	"github.com/vendorhub/payout/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPayoutStatusNotify, c.handlePayoutStatusNotify)
}

func (c *Consumer) handlePayoutStatusNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payout_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParsePayoutStatusNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_payout_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.PayoutID == 0 || payload.Event == "" {
		logger.Debugw("worker_payout_notify_skip_invalid_payload", "payout_id", payload.PayoutID, "event", payload.Event)
		return nil
	}
	if c.PayoutService == nil || c.PayoutNotifier == nil {
		logger.Warnw("worker_payout_notify_skip_service_nil", "payout_id", payload.PayoutID)
		return nil
	}

	payout, err := c.PayoutService.Get(payload.PayoutID)
	if err != nil {
		if errors.Is(err, service.ErrPayoutNotFound) {
			logger.Debugw("worker_payout_notify_skip_payout_not_found", "payout_id", payload.PayoutID)
			return nil
		}
		logger.Warnw("worker_payout_notify_fetch_payout_failed", "payout_id", payload.PayoutID, "error", err)
		return err
	}
	notification := service.PayoutNotification{
		Event:  payload.Event,
		Payout: payout,
	}
	if c.VendorRepo != nil {
		vendor, err := c.VendorRepo.GetByID(payout.VendorID)
		if err != nil {
			logger.Warnw("worker_payout_notify_fetch_vendor_failed", "payout_id", payout.ID, "vendor_id", payout.VendorID, "error", err)
			return err
		}
		notification.Vendor = vendor
	}
	if err := c.PayoutNotifier.NotifyPayoutEvent(ctx, notification); err != nil {
		logger.Warnw("worker_payout_notify_send_failed",
			"payout_id", payout.ID,
			"payout_no", payout.PayoutNo,
			"event", payload.Event,
			"error", err,
		)
		return err
	}
	return nil
}
