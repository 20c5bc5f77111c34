package domain

import (
	"time"
)

// Role types
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents a staff account. PINs are stored and compared as plain
// text; the terminal keeps the logged-in user client-side, there is no
// server-side session.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	PIN       string    `json:"-" gorm:"column:pin;not null"`
	Role      string    `json:"role" gorm:"not null;default:'cashier'"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	Count() (int64, error)
}
