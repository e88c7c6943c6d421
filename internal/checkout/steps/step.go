package steps

import (
	"context"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/shopspring/decimal"
)

type Step interface {
	Name() string
	Run(ctx context.Context, sub *Submission) error
}

// Submission carries one checkout attempt through the steps. Each step fills in its own part.
type Submission struct {
	Lines []domain.CartLine
	Info  domain.ShippingInfo

	Shipping    domain.ShippingInfo // normalized by ValidateShipping
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Order       domain.Order

	NotifyErr error
}
