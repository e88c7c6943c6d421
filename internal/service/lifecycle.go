package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

type LifecycleOptions struct {
	// Policy defaults to domain.PermissiveTransitions.
	Policy        domain.TransitionPolicy
	StoreTimeout  time.Duration
	NotifyTimeout time.Duration
}

// Lifecycle moves orders through the fulfilment pipeline.
// Concurrent transitions of the same order are last-write-wins.
type Lifecycle struct {
	orders   port.OrderRepository
	notifier port.Notifier
	opts     LifecycleOptions
}

func NewLifecycle(orders port.OrderRepository, notifier port.Notifier, opts LifecycleOptions) (*Lifecycle, error) {
	if orders == nil {
		return nil, errors.New("orders is nil")
	}
	if notifier == nil {
		return nil, errors.New("notifier is nil")
	}
	if opts.StoreTimeout <= 0 || opts.NotifyTimeout <= 0 {
		return nil, errors.New("timeouts must be positive")
	}
	if opts.Policy == nil {
		opts.Policy = domain.PermissiveTransitions
	}

	return &Lifecycle{
		orders:   orders,
		notifier: notifier,
		opts:     opts,
	}, nil
}

func (l *Lifecycle) Transition(ctx context.Context, orderID int64, newStatus string) (domain.Order, error) {
	status, err := domain.ToOrderStatus(newStatus)
	if err != nil {
		return domain.Order{}, &domain.ValidationError{Field: "status", Reason: err.Error()}
	}

	storeCtx, cancel := context.WithTimeout(ctx, l.opts.StoreTimeout)
	defer cancel()

	order, err := l.orders.GetOrder(storeCtx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
		}
		return domain.Order{}, &domain.PersistenceError{Err: fmt.Errorf("orders.GetOrder: %w", err)}
	}

	if err := l.opts.Policy(order.Status, status); err != nil {
		return domain.Order{}, fmt.Errorf("policy[%s->%s]: %w", order.Status, status, err)
	}

	updated, err := l.orders.UpdateOrderStatus(storeCtx, orderID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("orders.UpdateOrderStatus: %w", err)
		}
		return domain.Order{}, &domain.PersistenceError{Err: fmt.Errorf("orders.UpdateOrderStatus: %w", err)}
	}

	l.notify(ctx, updated)

	return updated, nil
}

func (l *Lifecycle) AvailableTransitions(order domain.Order) []domain.OrderStatus {
	return domain.AvailableTransitions(l.opts.Policy, order.Status)
}

func (l *Lifecycle) notify(ctx context.Context, order domain.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.opts.NotifyTimeout)
	defer cancel()

	if err := l.notifier.NotifyStatusChanged(ctx, order); err != nil {
		slog.Warn("status notification failed",
			"method", "Lifecycle.Transition",
			"order_id", order.ID,
			"status", order.Status,
			"error", err)
	}
}
