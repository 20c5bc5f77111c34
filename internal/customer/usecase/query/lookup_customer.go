package query

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rasoilabs/pos-backend/internal/customer/domain"
)

// LookupCustomerQuery finds a customer by phone number. A miss is not an
// error: checkout uses it to decide between attach and register.
type LookupCustomerQuery struct {
	Phone string
}

// LookupCustomerHandler handles the phone lookup query
type LookupCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewLookupCustomerHandler creates a new lookup handler
func NewLookupCustomerHandler(repo domain.CustomerRepository) *LookupCustomerHandler {
	return &LookupCustomerHandler{repo: repo}
}

// Handle executes the lookup; returns (nil, nil) when no customer matches
func (h *LookupCustomerHandler) Handle(query LookupCustomerQuery) (*domain.Customer, error) {
	if query.Phone == "" {
		return nil, fmt.Errorf("phone is required")
	}

	customer, err := h.repo.FindByPhone(query.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	return customer, nil
}

// ListCustomersQuery lists all customer accounts
type ListCustomersQuery struct{}

// ListCustomersHandler handles the list customers query
type ListCustomersHandler struct {
	repo domain.CustomerRepository
}

// NewListCustomersHandler creates a new list customers handler
func NewListCustomersHandler(repo domain.CustomerRepository) *ListCustomersHandler {
	return &ListCustomersHandler{repo: repo}
}

// Handle executes the list customers query
func (h *ListCustomersHandler) Handle(_ ListCustomersQuery) ([]domain.Customer, error) {
	customers, err := h.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}
