package kafka

import "time"

// OrderCompletedEvent represents a finalized order
type OrderCompletedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     uint      `json:"order_id"`
	BillNumber  string    `json:"bill_number"`
	OrderType   string    `json:"order_type"`
	PaymentMode string    `json:"payment_mode"`
	TotalAmount float64   `json:"total_amount"`
	AdvanceUsed float64   `json:"advance_used"`
	ItemCount   int       `json:"item_count"`
	CreatedBy   uint      `json:"created_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderCompleted = "order.completed"
)

// Kafka topics
const (
	TopicOrderCompleted = "pos.order-completed"
)
