package service

import (
	"context"

	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/queue"
)

// PayoutNotification 结算事件通知
type PayoutNotification struct {
	Event  string
	Payout *models.VendorPayout
	Vendor *models.Vendor
}

// PayoutNotifier 结算事件通知出口（邮件、消息等外部通道由实现方接入）
type PayoutNotifier interface {
	NotifyPayoutEvent(ctx context.Context, notification PayoutNotification) error
}

// LogPayoutNotifier 以结构化日志记录结算事件
type LogPayoutNotifier struct{}

// NewLogPayoutNotifier 创建日志通知器
func NewLogPayoutNotifier() *LogPayoutNotifier {
	return &LogPayoutNotifier{}
}

// NotifyPayoutEvent 写入结算事件日志
func (n *LogPayoutNotifier) NotifyPayoutEvent(_ context.Context, notification PayoutNotification) error {
	payout := notification.Payout
	if payout == nil {
		return nil
	}
	fields := []interface{}{
		"event", notification.Event,
		"payout_id", payout.ID,
		"payout_no", payout.PayoutNo,
		"vendor_id", payout.VendorID,
		"status", payout.Status,
		"net_amount", payout.NetAmount.String(),
		"currency", payout.Currency,
	}
	if notification.Vendor != nil {
		fields = append(fields, "vendor_email", notification.Vendor.Email)
	}
	if payout.ScheduledPayoutDate != nil {
		fields = append(fields, "scheduled_payout_date", *payout.ScheduledPayoutDate)
	}
	if payout.PaymentReference != "" {
		fields = append(fields, "payment_reference", payout.PaymentReference)
	}
	if payout.FailureReason != "" {
		fields = append(fields, "failure_reason", payout.FailureReason)
	}
	logger.Infow("payout_notification", fields...)
	return nil
}

// publishPayoutEvent 队列可用时异步投递，否则同步交给通知器；失败只记录日志
func publishPayoutEvent(ctx context.Context, queueClient *queue.Client, notifier PayoutNotifier, event string, payout *models.VendorPayout) {
	if payout == nil || payout.ID == 0 {
		return
	}
	if queueClient.Enabled() {
		if err := queueClient.EnqueuePayoutStatusNotify(queue.PayoutStatusNotifyPayload{
			PayoutID: payout.ID,
			VendorID: payout.VendorID,
			Event:    event,
			Status:   payout.Status,
		}); err != nil {
			logger.Warnw("payout_notify_enqueue_failed", "payout_id", payout.ID, "event", event, "error", err)
		}
		return
	}
	if notifier == nil {
		return
	}
	if err := notifier.NotifyPayoutEvent(ctx, PayoutNotification{Event: event, Payout: payout}); err != nil {
		logger.Warnw("payout_notify_failed", "payout_id", payout.ID, "event", event, "error", err)
	}
}
