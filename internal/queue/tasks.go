package queue

import (
	"encoding/json"

	"github.com/vendorhub/payout/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPayoutStatusNotify 结算单状态通知任务
	TaskPayoutStatusNotify = constants.TaskPayoutStatusNotify
)

// 结算通知事件
const (
	PayoutEventCreated    = "payout_created"
	PayoutEventProcessing = "payout_processing"
	PayoutEventCompleted  = "payout_completed"
	PayoutEventFailed     = "payout_failed"
	PayoutEventDue        = "payout_due"
)

// PayoutStatusNotifyPayload 结算单状态通知载荷
type PayoutStatusNotifyPayload struct {
	PayoutID uint   `json:"payout_id"`
	VendorID uint   `json:"vendor_id"`
	Event    string `json:"event"`
	Status   string `json:"status"`
}

// NewPayoutStatusNotifyTask 创建结算单状态通知任务
func NewPayoutStatusNotifyTask(payload PayoutStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPayoutStatusNotify, body), nil
}

// ParsePayoutStatusNotifyPayload 解析结算单状态通知载荷
func ParsePayoutStatusNotifyPayload(task *asynq.Task) (PayoutStatusNotifyPayload, error) {
	var payload PayoutStatusNotifyPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
