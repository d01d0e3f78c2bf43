// Package events fans order status changes out to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

const TypeOrderStatusChanged = "order_status_changed"

type OrderEvent struct {
	Type         string             `json:"type"`
	OrderID      string             `json:"orderId"`
	RestaurantID string             `json:"restaurantId"`
	UserID       string             `json:"userId"`
	Status       models.OrderStatus `json:"status"`
	TotalAmount  int64              `json:"totalAmount"`
	Timestamp    time.Time          `json:"timestamp"`
}

func NewOrderEvent(order models.Order) OrderEvent {
	return OrderEvent{
		Type:         TypeOrderStatusChanged,
		OrderID:      order.ID.Hex(),
		RestaurantID: order.Restaurant.Hex(),
		UserID:       order.User.Hex(),
		Status:       order.Status,
		TotalAmount:  order.TotalAmount,
		Timestamp:    order.Updated_at,
	}
}

// Notifier is told about every order whose status changed.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, order models.Order) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// DefaultPublishTimeout bounds one publish, retries included.
const DefaultPublishTimeout = 2 * time.Second

// KafkaPublisher writes order events keyed by order id, so one order's events
// stay ordered within a partition.
type KafkaPublisher struct {
	Writer  messageWriter
	Timeout time.Duration
}

// NewKafkaWriter flushes each message almost immediately; publishes happen
// inside request handling and must not wait for a batch to fill.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		MaxAttempts:            3,
		WriteTimeout:           time.Second,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer, Timeout: DefaultPublishTimeout}
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, order models.Order) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	event := NewOrderEvent(order)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	if err := p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(event.OrderID), Value: payload}); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

// Fanout notifies every notifier and joins their errors.
type Fanout []Notifier

func (f Fanout) OrderStatusChanged(ctx context.Context, order models.Order) error {
	var errs []error
	for _, n := range f {
		if err := n.OrderStatusChanged(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier only logs; it stands in for Kafka when no brokers are configured.
type LogNotifier struct{}

func (LogNotifier) OrderStatusChanged(ctx context.Context, order models.Order) error {
	slog.InfoContext(ctx, "order status changed", "orderId", order.ID.Hex(), "status", order.Status)
	return nil
}
