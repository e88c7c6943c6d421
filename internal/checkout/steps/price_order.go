package steps

import (
	"context"
	"fmt"

	"github.com/nikolayk812/nutshop/internal/domain"
)

// PriceOrder snapshots the lines into a new order priced with the delivery policy.
type PriceOrder struct {
	policy domain.DeliveryPolicy
}

func NewPriceOrder(policy domain.DeliveryPolicy) (PriceOrder, error) {
	var s PriceOrder

	if policy.FreeThreshold.IsNegative() || policy.FlatFee.IsNegative() {
		return s, fmt.Errorf("delivery policy is negative: %s/%s", policy.FreeThreshold, policy.FlatFee)
	}

	return PriceOrder{policy: policy}, nil
}

func (s PriceOrder) Name() string {
	return "price_order"
}

func (s PriceOrder) Run(_ context.Context, sub *Submission) error {
	sub.Subtotal = domain.SubtotalOf(sub.Lines)
	sub.DeliveryFee = s.policy.Fee(sub.Subtotal, len(sub.Lines) == 0)

	sub.Order = domain.Order{
		CustomerName: sub.Shipping.FullName,
		PhoneNumber:  sub.Shipping.PhoneNumber,
		Email:        sub.Shipping.Email,
		Address:      sub.Shipping.FormatAddress(),
		Notes:        sub.Shipping.Notes,
		Items:        domain.SnapshotItems(sub.Lines),
		TotalAmount:  sub.Subtotal.Add(sub.DeliveryFee),
		Status:       domain.OrderStatusReceived,
	}

	return nil
}
