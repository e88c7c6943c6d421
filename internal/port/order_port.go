package port

import (
	"context"

	"github.com/nikolayk812/nutshop/internal/domain"
)

type OrderRepository interface {
	// InsertOrder stores the order and returns it with ID and CreatedAt assigned.
	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)

	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)

	// ListOrders returns all orders, newest first.
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error)
}
