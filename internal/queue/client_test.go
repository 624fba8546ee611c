package queue

import (
	"testing"

	"github.com/vendorhub/payout/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueuePayoutStatusNotify(PayoutStatusNotifyPayload{PayoutID: 1, Event: PayoutEventCreated}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestQueueForPayoutEvent(t *testing.T) {
	if got := queueForPayoutEvent(PayoutEventCompleted, DefaultQueue); got != CriticalQueue {
		t.Fatalf("completed should use critical queue, got %s", got)
	}
	if got := queueForPayoutEvent(PayoutEventFailed, DefaultQueue); got != CriticalQueue {
		t.Fatalf("failed should use critical queue, got %s", got)
	}
	if got := queueForPayoutEvent(PayoutEventCreated, DefaultQueue); got != DefaultQueue {
		t.Fatalf("created should use default queue, got %s", got)
	}
}

func TestPayoutStatusNotifyTaskRoundTrip(t *testing.T) {
	task, err := NewPayoutStatusNotifyTask(PayoutStatusNotifyPayload{
		PayoutID: 7,
		VendorID: 3,
		Event:    PayoutEventProcessing,
		Status:   "processing",
	})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskPayoutStatusNotify {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParsePayoutStatusNotifyPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.PayoutID != 7 || payload.VendorID != 3 || payload.Event != PayoutEventProcessing {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency: %d", cfg.Concurrency)
	}
	if cfg.Queues[CriticalQueue] != 2 {
		t.Fatalf("critical queue should be weighted, got %v", cfg.Queues)
	}
}
