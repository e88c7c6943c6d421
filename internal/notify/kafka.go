package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	EventOrderCreated  = "order.created"
	EventStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type        string             `json:"type"`
	OrderID     int64              `json:"order_id"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	OccurredAt  time.Time          `json:"occurred_at"`
	Order       OrderPayload       `json:"order"`
}

type OrderPayload struct {
	CustomerName string        `json:"customer_name"`
	PhoneNumber  string        `json:"phone_number"`
	Email        string        `json:"email,omitempty"`
	Address      string        `json:"address"`
	Notes        string        `json:"notes,omitempty"`
	Items        []ItemPayload `json:"items"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type ItemPayload struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Weight      string          `json:"weight"`
	Price       decimal.Decimal `json:"price"`
}

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Kafka publishes order events as JSON, keyed by order id so one order's events stay ordered.
type Kafka struct {
	producer producer
	topic    string
	now      func() time.Time
	close    func()
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are empty")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is empty")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kgo.NewClient: %w", err)
	}

	return &Kafka{
		producer: client,
		topic:    topic,
		now:      time.Now,
		close:    client.Close,
	}, nil
}

func (k *Kafka) NotifyOrderCreated(ctx context.Context, order domain.Order) error {
	return k.publish(ctx, EventOrderCreated, order)
}

func (k *Kafka) NotifyStatusChanged(ctx context.Context, order domain.Order) error {
	return k.publish(ctx, EventStatusChanged, order)
}

func (k *Kafka) Close() {
	if k.close != nil {
		k.close()
	}
}

func (k *Kafka) publish(ctx context.Context, eventType string, order domain.Order) error {
	value, err := json.Marshal(NewOrderEvent(eventType, order, k.now()))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(strconv.FormatInt(order.ID, 10)),
		Value: value,
	}

	if err := k.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("producer.ProduceSync[%s]: %w", eventType, err)
	}

	return nil
}

func NewOrderEvent(eventType string, order domain.Order, at time.Time) OrderEvent {
	items := make([]ItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemPayload{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Weight:      string(item.Tier),
			Price:       item.Price,
		})
	}

	return OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  at.UTC(),
		Order: OrderPayload{
			CustomerName: order.CustomerName,
			PhoneNumber:  order.PhoneNumber,
			Email:        order.Email,
			Address:      order.Address,
			Notes:        order.Notes,
			Items:        items,
			CreatedAt:    order.CreatedAt,
			UpdatedAt:    order.UpdatedAt,
		},
	}
}
