package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable after creation except for Status and UpdatedAt.
type Order struct {
	ID           int64
	CustomerName string
	PhoneNumber  string
	Email        string
	Address      string
	Notes        string
	Items        []OrderItem
	TotalAmount  decimal.Decimal
	Status       OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a snapshot of a cart line, decoupled from the live catalog.
type OrderItem struct {
	ProductID   int64
	ProductName string
	Quantity    int
	Tier        WeightTier
	Price       decimal.Decimal
}

func (i OrderItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func SnapshotItems(lines []CartLine) []OrderItem {
	items := make([]OrderItem, 0, len(lines))

	for _, l := range lines {
		items = append(items, OrderItem{
			ProductID:   l.Key.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			Tier:        l.Key.Tier,
			Price:       l.UnitPrice,
		})
	}

	return items
}
