package domain

import (
	"errors"
	"slices"
)

type OrderStatus string

// remember to add new statuses to the orderPipeline slice
const (
	OrderStatusReceived       OrderStatus = "received"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

var orderPipeline = []OrderStatus{
	OrderStatusReceived,
	OrderStatusProcessing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if slices.Contains(orderPipeline, status) {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

// OrderStatuses returns the statuses in pipeline order.
func OrderStatuses() []OrderStatus {
	return slices.Clone(orderPipeline)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

func (s OrderStatus) String() string {
	return string(s)
}

// TransitionPolicy decides whether an order may move from one status to another.
type TransitionPolicy func(from, to OrderStatus) error

// PermissiveTransitions lets an administrator move a non-delivered order to any
// later-stage status other than its current one, including sideways and backwards
// between processing and out_for_delivery.
func PermissiveTransitions(from, to OrderStatus) error {
	if from.IsTerminal() {
		return ErrTerminalState
	}
	if from == to {
		return ErrSameStatus
	}
	if to == OrderStatusReceived {
		return ErrTransition
	}
	return nil
}

// StrictTransitions only allows the next status in the pipeline.
func StrictTransitions(from, to OrderStatus) error {
	if from.IsTerminal() {
		return ErrTerminalState
	}
	if from == to {
		return ErrSameStatus
	}

	idx := slices.Index(orderPipeline, from)
	if idx < 0 || idx+1 >= len(orderPipeline) || orderPipeline[idx+1] != to {
		return ErrTransition
	}
	return nil
}

// AvailableTransitions lists the statuses policy allows from the given one, in pipeline order.
func AvailableTransitions(policy TransitionPolicy, from OrderStatus) []OrderStatus {
	var result []OrderStatus

	for _, to := range orderPipeline {
		if policy(from, to) == nil {
			result = append(result, to)
		}
	}

	return result
}
