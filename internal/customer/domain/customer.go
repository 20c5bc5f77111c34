package domain

import (
	"time"
)

// Customer is an advance-balance account keyed by phone number. The balance
// is a single running figure debited at checkout and credited by staff
// top-ups; there is no per-transaction ledger.
type Customer struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	PhoneNumber    string    `json:"phone_number" gorm:"uniqueIndex;not null"`
	Name           string    `json:"name" gorm:"not null"`
	AdvanceBalance float64   `json:"advance_balance" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// CustomerStats summarizes a customer's order history
type CustomerStats struct {
	TotalSpent       float64       `json:"total_spent"`
	TotalOrders      int           `json:"total_orders"`
	MostOrderedItems []OrderedItem `json:"most_ordered_items"`
}

// OrderedItem is one row of the most-ordered ranking
type OrderedItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// CustomerRepository defines the contract for customer data access
type CustomerRepository interface {
	Create(customer *Customer) error
	FindByID(id uint) (*Customer, error)
	FindByPhone(phone string) (*Customer, error)
	FindAll() ([]Customer, error)
	Update(customer *Customer) error
}
