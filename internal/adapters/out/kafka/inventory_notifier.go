// Package kafka publishes order lifecycle events to downstream systems.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"ordersim/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// publishTimeout bounds how long one completed-order publish may take.
const publishTimeout = 5 * time.Second

// completedOrderEvent is the message body published when an order reaches
// its final delivered state.
type completedOrderEvent struct {
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	Store       string    `json:"store"`
	Category    string    `json:"category"`
	TotalAmount float64   `json:"totalAmount"`
	CompletedAt time.Time `json:"completedAt"`
}

// InventoryNotifier publishes completed-order events so inventory systems
// can adjust stock for the owning storefront's category.
//
// Publishing is fire and forget: each notification runs in its own
// goroutine with a bounded timeout, and a broker failure is logged, never
// surfaced to the business operation that completed the order.
type InventoryNotifier struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewInventoryNotifier creates a notifier writing to the given topic.
// brokersCSV is a comma-separated broker list, e.g. "localhost:9092".
func NewInventoryNotifier(brokersCSV, topic string, logger *slog.Logger) *InventoryNotifier {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &InventoryNotifier{
		writer: writer,
		logger: logger.With("component", "inventory_notifier"),
	}
}

// NotifyOrderCompleted publishes the completed-order event asynchronously.
// The aggregate is read before the goroutine starts so the caller may keep
// mutating it.
func (n *InventoryNotifier) NotifyOrderCompleted(_ context.Context, aggregate *order.Order) {
	event := completedOrderEvent{
		OrderID:     aggregate.ID().String(),
		UserID:      aggregate.UserID(),
		Store:       aggregate.Store().Name(),
		Category:    aggregate.Store().Category(),
		TotalAmount: aggregate.TotalAmount(),
		CompletedAt: aggregate.UpdatedAt(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := n.publish(ctx, event); err != nil {
			n.logger.Error("completed-order event publish failed",
				"orderId", event.OrderID,
				"store", event.Store,
				"error", err,
			)
		}
	}()
}

func (n *InventoryNotifier) publish(ctx context.Context, event completedOrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Store),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

// Close flushes and closes the underlying writer.
func (n *InventoryNotifier) Close() error {
	return n.writer.Close()
}

// NoopInventoryNotifier drops all notifications. Used when no broker is
// configured.
type NoopInventoryNotifier struct{}

// NewNoopInventoryNotifier creates a notifier that does nothing.
func NewNoopInventoryNotifier() NoopInventoryNotifier {
	return NoopInventoryNotifier{}
}

// NotifyOrderCompleted discards the event.
func (NoopInventoryNotifier) NotifyOrderCompleted(_ context.Context, _ *order.Order) {}
