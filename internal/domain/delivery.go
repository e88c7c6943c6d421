package domain

import "github.com/shopspring/decimal"

type DeliveryPolicy struct {
	FreeThreshold decimal.Decimal
	FlatFee       decimal.Decimal
}

var DefaultDeliveryPolicy = DeliveryPolicy{
	FreeThreshold: decimal.NewFromInt(500),
	FlatFee:       decimal.NewFromInt(50),
}

// Fee is free for an empty cart and for subtotals at or above the threshold.
func (p DeliveryPolicy) Fee(subtotal decimal.Decimal, empty bool) decimal.Decimal {
	if empty || subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.FlatFee
}
