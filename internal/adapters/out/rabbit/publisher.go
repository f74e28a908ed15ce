// Package rabbit publishes order snapshots to kitchen displays over RabbitMQ.
//
// Snapshots go to a durable fanout exchange; every connected display gets its
// own queue bound to it and receives the full current state of the order, so
// a display that missed an update is corrected by the next one. Delivery is
// at-most-once and strictly best-effort: the ordering flow never waits for,
// or fails on, the kitchen side.
package rabbit

import (
	"context"
	"encoding/json"
	"time"

	"pos/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the fanout exchange kitchen displays bind their queues to.
const ExchangeName = "kitchen.orders"

const publishTimeout = 5 * time.Second

// orderMessage is the wire snapshot of an order.
type orderMessage struct {
	OrderID       string             `json:"order_id"`
	Number        int                `json:"number"`
	BusinessDate  string             `json:"business_date"`
	Source        string             `json:"source"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	ClosedAt      *time.Time         `json:"closed_at,omitempty"`
	Items         []orderItemMessage `json:"items"`
}

type orderItemMessage struct {
	ItemID    string `json:"item_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
}

// KitchenPublisher fans order snapshots out to kitchen displays.
type KitchenPublisher struct {
	channel *amqp.Channel
}

// NewKitchenPublisher declares the fanout exchange and returns a publisher
// bound to it. The exchange is durable, so display queues survive broker
// restarts; the publisher itself holds no queue state.
func NewKitchenPublisher(conn *amqp.Connection) (*KitchenPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = channel.ExchangeDeclare(
		ExchangeName, // name
		"fanout",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = channel.Close()
		return nil, err
	}

	return &KitchenPublisher{channel: channel}, nil
}

// Publish sends the order's current snapshot to the exchange.
// No acknowledgment is awaited; callers treat a returned error as a logging
// matter, never a failure of the mutation that triggered the publish.
func (p *KitchenPublisher) Publish(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(toMessage(aggregate))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		ExchangeName, // exchange
		"",           // routing key, ignored by fanout
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
}

// Close releases the underlying channel.
func (p *KitchenPublisher) Close() error {
	return p.channel.Close()
}

func toMessage(aggregate *order.Order) orderMessage {
	items := make([]orderItemMessage, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, orderItemMessage{
			ItemID:    item.ID().String(),
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			Notes:     item.Notes(),
			Status:    item.Status().String(),
		})
	}

	return orderMessage{
		OrderID:       aggregate.ID().String(),
		Number:        aggregate.Number(),
		BusinessDate:  aggregate.BusinessDate().Key(),
		Source:        aggregate.Source().String(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		ClosedAt:      aggregate.ClosedAt(),
		Items:         items,
	}
}
