package notification

import (
	"context"

	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/kafka"
	"github.com/rasoilabs/pos-backend/pkg/logger"
)

// Event types pushed over the notification stream
const (
	EventOrderCompleted = "order_completed"
)

// OrderPublisher fans completed orders out to SSE subscribers and,
// when a broker is configured, to Kafka for other instances.
type OrderPublisher struct {
	hub      *Hub
	producer *kafka.Publisher
}

// NewOrderPublisher creates a publisher. producer may be nil when Kafka
// is disabled.
func NewOrderPublisher(hub *Hub, producer *kafka.Publisher) *OrderPublisher {
	return &OrderPublisher{hub: hub, producer: producer}
}

// OrderCompleted delivers the event. The order is already committed, so
// publishing failures are logged and swallowed.
func (p *OrderPublisher) OrderCompleted(order *orderdomain.Order) {
	p.hub.Publish(EventOrderCompleted, order)

	if p.producer == nil {
		return
	}
	event := kafka.OrderCompletedEvent{
		OrderID:     order.ID,
		BillNumber:  order.BillNumber,
		OrderType:   order.OrderType,
		PaymentMode: order.PaymentMode,
		TotalAmount: order.TotalAmount,
		AdvanceUsed: order.AdvanceUsed,
		ItemCount:   len(order.Items),
		CreatedBy:   order.CreatedBy,
	}
	go func() {
		if err := p.producer.PublishOrderCompleted(context.Background(), event); err != nil {
			logger.Logger.Warn().Err(err).Str("bill_number", order.BillNumber).Msg("Kafka publish failed")
		}
	}()
}
