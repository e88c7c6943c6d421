package template

import (
	"time"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderData struct {
	OrderID      int64
	CustomerName string
	PhoneNumber  string
	Address      string
	Items        []domain.OrderItem
	TotalAmount  decimal.Decimal
	Status       domain.OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func BuildOrderData(order domain.Order) OrderData {
	return OrderData{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		PhoneNumber:  order.PhoneNumber,
		Address:      order.Address,
		Items:        order.Items,
		TotalAmount:  order.TotalAmount,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
