package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/nutshop/internal/checkout/steps"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

type Pipeline struct {
	steps []steps.Step
}

type Options struct {
	Policy        domain.DeliveryPolicy
	StoreTimeout  time.Duration
	NotifyTimeout time.Duration
}

func NewPipeline(orders port.OrderRepository, notifier port.Notifier, opts Options) (Pipeline, error) {
	var p Pipeline

	pSteps, err := buildSteps(orders, notifier, opts)
	if err != nil {
		return p, fmt.Errorf("buildSteps: %w", err)
	}

	return Pipeline{steps: pSteps}, nil
}

// Run stops at the first failing step; the submission keeps whatever the earlier steps produced.
func (p Pipeline) Run(ctx context.Context, sub *steps.Submission) error {
	for idx, step := range p.steps {
		if err := step.Run(ctx, sub); err != nil {
			return fmt.Errorf("step.Run[%d][%s]: %w", idx, step.Name(), err)
		}
	}

	return nil
}

func buildSteps(orders port.OrderRepository, notifier port.Notifier, opts Options) ([]steps.Step, error) {
	results := []steps.Step{
		steps.NewRequireLines(),
		steps.NewValidateShipping(),
	}

	priceStep, err := steps.NewPriceOrder(opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("steps.NewPriceOrder: %w", err)
	}
	results = append(results, priceStep)

	persistStep, err := steps.NewPersistOrder(orders, opts.StoreTimeout)
	if err != nil {
		return nil, fmt.Errorf("steps.NewPersistOrder: %w", err)
	}
	results = append(results, persistStep)

	notifyStep, err := steps.NewNotifyOrder(notifier, opts.NotifyTimeout)
	if err != nil {
		return nil, fmt.Errorf("steps.NewNotifyOrder: %w", err)
	}
	results = append(results, notifyStep)

	return results, nil
}
