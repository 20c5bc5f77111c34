package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// CreateCustomerCommand represents the command to register a customer account
type CreateCustomerCommand struct {
	PhoneNumber string
	Name        string
}

// CreateCustomerHandler handles customer creation
type CreateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewCreateCustomerHandler creates a new create customer handler
func NewCreateCustomerHandler(repo domain.CustomerRepository) *CreateCustomerHandler {
	return &CreateCustomerHandler{repo: repo}
}

// Handle executes the create customer command
func (h *CreateCustomerHandler) Handle(cmd CreateCustomerCommand) (*domain.Customer, error) {
	if cmd.PhoneNumber == "" {
		return nil, apperror.Invalid("phone number is required")
	}
	if cmd.Name == "" {
		return nil, apperror.Invalid("name is required")
	}

	if existing, _ := h.repo.FindByPhone(cmd.PhoneNumber); existing != nil {
		return nil, apperror.Invalid("customer with this phone number already exists")
	}

	customer := &domain.Customer{
		PhoneNumber:    cmd.PhoneNumber,
		Name:           cmd.Name,
		AdvanceBalance: 0,
	}

	if err := h.repo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}
