package steps

import (
	"context"
)

type ValidateShipping struct{}

func NewValidateShipping() ValidateShipping {
	return ValidateShipping{}
}

func (s ValidateShipping) Name() string {
	return "validate_shipping"
}

func (s ValidateShipping) Run(_ context.Context, sub *Submission) error {
	if err := sub.Info.Validate(); err != nil {
		return err
	}

	sub.Shipping = sub.Info.Normalized()
	return nil
}
