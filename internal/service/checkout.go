package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/nutshop/internal/checkout"
	"github.com/nikolayk812/nutshop/internal/checkout/steps"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
	"github.com/shopspring/decimal"
)

// Receipt is the outcome of a successful submission.
// NotifyErr is informational: the order exists even when the notification failed.
type Receipt struct {
	Order       domain.Order
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	ClearCart   bool
	NotifyErr   error
}

type Checkout struct {
	pipeline checkout.Pipeline
}

func NewCheckout(orders port.OrderRepository, notifier port.Notifier, opts checkout.Options) (*Checkout, error) {
	pipeline, err := checkout.NewPipeline(orders, notifier, opts)
	if err != nil {
		return nil, fmt.Errorf("checkout.NewPipeline: %w", err)
	}

	return &Checkout{pipeline: pipeline}, nil
}

// Submit turns cart lines and shipping details into a stored order.
// Errors are domain.ErrEmptyCart, domain.ValidationErrors or *domain.SubmissionError.
func (c *Checkout) Submit(ctx context.Context, lines []domain.CartLine, info domain.ShippingInfo) (Receipt, error) {
	sub := &steps.Submission{
		Lines: lines,
		Info:  info,
	}

	if err := c.pipeline.Run(ctx, sub); err != nil {
		return Receipt{}, fmt.Errorf("pipeline.Run: %w", err)
	}

	return Receipt{
		Order:       sub.Order,
		Subtotal:    sub.Subtotal,
		DeliveryFee: sub.DeliveryFee,
		ClearCart:   true,
		NotifyErr:   sub.NotifyErr,
	}, nil
}
