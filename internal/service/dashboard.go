package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

type Dashboard struct {
	orders port.OrderRepository
}

func NewDashboard(orders port.OrderRepository) (*Dashboard, error) {
	if orders == nil {
		return nil, errors.New("orders is nil")
	}

	return &Dashboard{orders: orders}, nil
}

// Orders returns matching orders, newest first. The zero filter lists everything.
func (d *Dashboard) Orders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if len(filter.Statuses) == 0 && filter.SearchTerm() == "" {
		orders, err := d.orders.ListOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("orders.ListOrders: %w", err)
		}
		return orders, nil
	}

	orders, err := d.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

func (d *Dashboard) Order(ctx context.Context, orderID int64) (domain.Order, error) {
	order, err := d.orders.GetOrder(ctx, orderID)
	if err != nil {
		return order, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

func (d *Dashboard) Stats(ctx context.Context) (domain.OrderStats, error) {
	orders, err := d.orders.ListOrders(ctx)
	if err != nil {
		return domain.OrderStats{}, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return domain.ComputeStats(orders), nil
}
