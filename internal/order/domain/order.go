package domain

import (
	"errors"
	"time"
)

// Order types
const (
	TypeDineIn   = "dine-in"
	TypeTakeaway = "takeaway"
)

// Payment modes
const (
	PaymentCash = "cash"
	PaymentUPI  = "upi"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// ErrInsufficientAdvance is returned when an order tries to apply more
// advance than the customer's balance holds.
var ErrInsufficientAdvance = errors.New("insufficient advance balance")

// Order is a finalized bill. TotalAmount is the item subtotal minus any
// advance applied. Orders are never updated or deleted once created.
type Order struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BillNumber  string    `json:"bill_number" gorm:"uniqueIndex;not null"`
	OrderType   string    `json:"order_type" gorm:"not null"`
	PaymentMode string    `json:"payment_mode" gorm:"not null"`
	TotalAmount float64   `json:"total_amount" gorm:"not null"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status" gorm:"not null;default:'completed'"`
	CustomerID  *uint     `json:"customer_id,omitempty" gorm:"index"`
	AdvanceUsed float64   `json:"advance_used" gorm:"not null;default:0"`
	CreatedBy   uint      `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Items []OrderItem `json:"items,omitempty" gorm:"-"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// Subtotal is the order value before the advance deduction
func (o *Order) Subtotal() float64 {
	return o.TotalAmount + o.AdvanceUsed
}

// OrderItem is a bill line. ProductName and PriceAtTime are snapshots taken
// at order time so historical bills survive later product edits or deletes.
type OrderItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     uint    `json:"order_id" gorm:"not null;index"`
	ProductID   uint    `json:"product_id" gorm:"not null;index"`
	ProductName string  `json:"product_name" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	PriceAtTime float64 `json:"price_at_time" gorm:"not null"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// BillSequence is the per-day counter backing bill number allocation.
// A conditional upsert increments LastNumber atomically, so concurrent
// order creation cannot produce duplicate or skipped sequence numbers.
type BillSequence struct {
	Day        string `gorm:"primaryKey;size:8"`
	LastNumber int    `gorm:"not null"`
}

// TableName specifies the table name
func (BillSequence) TableName() string {
	return "bill_sequences"
}

// OrderFilter narrows order listings
type OrderFilter struct {
	Date        string // single day, YYYY-MM-DD
	From        string // explicit range start, YYYY-MM-DD
	To          string // explicit range end, YYYY-MM-DD
	OrderType   string
	PaymentMode string
	Status      string
	MinAmount   *float64
	MaxAmount   *float64
	BillNumber  string // substring match
	CustomerID  uint
}

// OrderRepository defines the contract for order data access.
// CreateCompleted performs the whole creation workflow in one database
// transaction: bill number allocation, order + item inserts, stock
// decrement with history trail, low-stock notification generation and
// the advance-balance debit.
type OrderRepository interface {
	CreateCompleted(order *Order, items []OrderItem) error
	FindByID(id uint) (*Order, error)
	FindAll(filter OrderFilter) ([]Order, error)
	FindItemsByOrderID(orderID uint) ([]OrderItem, error)
	FindItemsByOrderIDs(orderIDs []uint) ([]OrderItem, error)
	FindByCustomerID(customerID uint) ([]Order, error)
	FindCompletedBetween(start, end time.Time) ([]Order, error)
	CountToday() (int64, error)
}
