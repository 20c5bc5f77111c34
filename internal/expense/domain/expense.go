package domain

import (
	"time"
)

// Expense is an operating cost entry. ExpenseDate is the business date the
// cost belongs to, which may differ from CreatedAt when entries are
// backfilled.
type Expense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Description string    `json:"description" gorm:"not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Category    string    `json:"category,omitempty"`
	ExpenseDate string    `json:"expense_date" gorm:"size:10;not null;index"`
	Notes       string    `json:"notes,omitempty"`
	CreatedBy   uint      `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Expense) TableName() string {
	return "expenses"
}

// ExpenseFilter narrows expense listings
type ExpenseFilter struct {
	Date     string // single day, YYYY-MM-DD
	From     string
	To       string
	Category string
}

// ExpenseRepository defines the contract for expense data access
type ExpenseRepository interface {
	Create(expense *Expense) error
	FindByID(id uint) (*Expense, error)
	FindAll(filter ExpenseFilter) ([]Expense, error)
	Update(expense *Expense) error
	Delete(id uint) error
	SumBetween(from, to string) (float64, error)
}
