package port

import (
	"context"

	"github.com/nikolayk812/nutshop/internal/domain"
)

// Notifier delivers order events to an outside channel. Callers treat failures as non-fatal.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, order domain.Order) error
	NotifyStatusChanged(ctx context.Context, order domain.Order) error
}
