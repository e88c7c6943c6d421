package notify

import (
	"context"
	"errors"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

// Multi fans an event out to every notifier; one failing channel does not stop the others.
type Multi []port.Notifier

func (m Multi) NotifyOrderCreated(ctx context.Context, order domain.Order) error {
	var errs []error

	for _, n := range m {
		if err := n.NotifyOrderCreated(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m Multi) NotifyStatusChanged(ctx context.Context, order domain.Order) error {
	var errs []error

	for _, n := range m {
		if err := n.NotifyStatusChanged(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) NotifyOrderCreated(context.Context, domain.Order) error {
	return nil
}

func (Nop) NotifyStatusChanged(context.Context, domain.Order) error {
	return nil
}

// Combine returns Nop for no notifiers and the notifier itself for one.
func Combine(notifiers ...port.Notifier) port.Notifier {
	switch len(notifiers) {
	case 0:
		return Nop{}
	case 1:
		return notifiers[0]
	default:
		return Multi(notifiers)
	}
}
