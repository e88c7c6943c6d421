package steps

import (
	"context"

	"github.com/nikolayk812/nutshop/internal/domain"
)

type RequireLines struct{}

func NewRequireLines() RequireLines {
	return RequireLines{}
}

func (s RequireLines) Name() string {
	return "require_lines"
}

func (s RequireLines) Run(_ context.Context, sub *Submission) error {
	if len(sub.Lines) == 0 {
		return domain.ErrEmptyCart
	}

	for _, l := range sub.Lines {
		if l.Quantity < 1 || l.Quantity > domain.MaxLineQuantity {
			return domain.ErrInvalidQuantity
		}
	}

	return nil
}
