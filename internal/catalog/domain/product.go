package domain

import (
	"time"
)

// Stock status values derived on read from quantity versus threshold
const (
	StockStatusIn  = "in_stock"
	StockStatusLow = "low_stock"
	StockStatusOut = "out_of_stock"
)

// Product represents a menu item. Enabled hides an item from the POS grid
// without deleting it; historical bills keep their own name/price snapshots.
type Product struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"not null"`
	CategoryID        uint      `json:"category_id" gorm:"not null;index"`
	CategoryName      string    `json:"category_name,omitempty" gorm:"->;-:migration"`
	Price             float64   `json:"price" gorm:"not null"`
	Enabled           bool      `json:"enabled" gorm:"not null;default:true"`
	StockQuantity     int       `json:"stock_quantity" gorm:"not null;default:0"`
	LowStockThreshold int       `json:"low_stock_threshold" gorm:"not null;default:10"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// StockStatus classifies the current stock level against the threshold.
// Zero stock is out_of_stock regardless of threshold.
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity == 0:
		return StockStatusOut
	case p.StockQuantity <= p.LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// ProductFilter narrows product listings
type ProductFilter struct {
	CategoryID  uint
	EnabledOnly bool
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error)
	FindAll() ([]Category, error)
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll(filter ProductFilter) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
}
