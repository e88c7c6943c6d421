package steps

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikolayk812/nutshop/internal/port"
)

// NotifyOrder never fails the checkout: the order is already stored when it runs.
type NotifyOrder struct {
	notifier port.Notifier
	timeout  time.Duration
}

func NewNotifyOrder(notifier port.Notifier, timeout time.Duration) (NotifyOrder, error) {
	var s NotifyOrder

	if notifier == nil {
		return s, fmt.Errorf("notifier is nil")
	}
	if timeout <= 0 {
		return s, fmt.Errorf("timeout must be positive")
	}

	return NotifyOrder{
		notifier: notifier,
		timeout:  timeout,
	}, nil
}

func (s NotifyOrder) Name() string {
	return "notify_order"
}

func (s NotifyOrder) Run(ctx context.Context, sub *Submission) error {
	// detached from request cancellation, bounded by the timeout only
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.notifier.NotifyOrderCreated(ctx, sub.Order); err != nil {
		slog.Warn("order notification failed",
			"method", "NotifyOrder.Run",
			"order_id", sub.Order.ID,
			"error", err)

		sub.NotifyErr = err
	}

	return nil
}
