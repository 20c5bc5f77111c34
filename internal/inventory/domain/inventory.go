package domain

import (
	"time"
)

// Stock change types
const (
	ChangePurchase   = "purchase"
	ChangeSale       = "sale"
	ChangeAdjustment = "adjustment"
	ChangeInitial    = "initial"
)

// Notification types
const (
	NotifyLowStock   = "low_stock"
	NotifyOutOfStock = "out_of_stock"
)

// InventoryHistory is an append-only audit row for every stock mutation.
// NewStock = PreviousStock + QuantityChange always holds (stock floors at
// zero, so QuantityChange records the clamped delta).
type InventoryHistory struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ProductID        uint      `json:"product_id" gorm:"not null;index"`
	ProductName      string    `json:"product_name,omitempty" gorm:"->;-:migration"`
	ChangeType       string    `json:"change_type" gorm:"not null"`
	QuantityChange   int       `json:"quantity_change" gorm:"not null"`
	PreviousStock    int       `json:"previous_stock" gorm:"not null"`
	NewStock         int       `json:"new_stock" gorm:"not null"`
	ReferenceOrderID *uint     `json:"reference_order_id,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedBy        *uint     `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (InventoryHistory) TableName() string {
	return "inventory_history"
}

// InventoryNotification is a low-stock alert with a manual acknowledgment
// workflow. Rows are inserted when a stock mutation crosses the threshold.
type InventoryNotification struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	ProductID        uint       `json:"product_id" gorm:"not null;index"`
	CurrentStock     int        `json:"current_stock" gorm:"not null"`
	Threshold        int        `json:"threshold" gorm:"not null"`
	NotificationType string     `json:"notification_type" gorm:"not null"`
	Acknowledged     bool       `json:"acknowledged" gorm:"not null;default:false"`
	AcknowledgedBy   *uint      `json:"acknowledged_by,omitempty"`
	AcknowledgedAt   *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (InventoryNotification) TableName() string {
	return "inventory_notifications"
}

// StockReport is the derived per-product inventory line
type StockReport struct {
	ProductID         uint      `json:"product_id"`
	ProductName       string    `json:"product_name"`
	CategoryName      string    `json:"category_name,omitempty"`
	CurrentStock      int       `json:"current_stock"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	Status            string    `json:"status"`
	TotalSold         int       `json:"total_sold"`
	LastUpdated       time.Time `json:"last_updated"`
}

// StockChangeResult reports the outcome of a restock or adjustment
type StockChangeResult struct {
	ProductID uint              `json:"product_id"`
	NewStock  int               `json:"new_stock"`
	History   *InventoryHistory `json:"history"`
}

// InventoryRepository defines the contract for stock mutations and the
// audit/notification tables
type InventoryRepository interface {
	// ApplyStockChange atomically shifts a product's stock by quantityChange
	// (floored at zero), appends the history row and generates a low-stock
	// notification when the change crosses the threshold.
	ApplyStockChange(productID uint, changeType string, quantityChange int, referenceOrderID *uint, notes string, createdBy *uint) (*StockChangeResult, error)

	// RecordChange appends a history row without touching stock. Used when
	// the stock value was written elsewhere (product creation).
	RecordChange(productID uint, changeType string, quantityChange, previousStock, newStock int, referenceOrderID *uint, notes string, createdBy *uint) error

	FindHistory(productID uint, limit int) ([]InventoryHistory, error)
	FindNotifications(unacknowledgedOnly bool) ([]InventoryNotification, error)
	Acknowledge(notificationID uint, acknowledgedBy *uint) (*InventoryNotification, error)
	TotalSoldByProduct() (map[uint]int, error)
}
