package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

type PersistOrder struct {
	orders  port.OrderRepository
	timeout time.Duration
}

func NewPersistOrder(orders port.OrderRepository, timeout time.Duration) (PersistOrder, error) {
	var s PersistOrder

	if orders == nil {
		return s, fmt.Errorf("orders is nil")
	}
	if timeout <= 0 {
		return s, fmt.Errorf("timeout must be positive")
	}

	return PersistOrder{
		orders:  orders,
		timeout: timeout,
	}, nil
}

func (s PersistOrder) Name() string {
	return "persist_order"
}

func (s PersistOrder) Run(ctx context.Context, sub *Submission) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	inserted, err := s.orders.InsertOrder(ctx, sub.Order)
	if err != nil {
		return &domain.SubmissionError{Err: fmt.Errorf("orders.InsertOrder: %w", err)}
	}

	sub.Order = inserted
	return nil
}
