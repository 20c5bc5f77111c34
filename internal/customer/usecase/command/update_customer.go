package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// UpdateCustomerCommand updates a customer's name and/or advance balance.
// Balance writes here are staff actions (top-ups, corrections); checkout
// debits go through the order workflow instead.
type UpdateCustomerCommand struct {
	ID             uint
	Name           *string
	AdvanceBalance *float64
}

// UpdateCustomerHandler handles customer updates
type UpdateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewUpdateCustomerHandler creates a new update customer handler
func NewUpdateCustomerHandler(repo domain.CustomerRepository) *UpdateCustomerHandler {
	return &UpdateCustomerHandler{repo: repo}
}

// Handle executes the update customer command
func (h *UpdateCustomerHandler) Handle(cmd UpdateCustomerCommand) (*domain.Customer, error) {
	if cmd.ID == 0 {
		return nil, apperror.Invalid("customer id is required")
	}
	if cmd.Name == nil && cmd.AdvanceBalance == nil {
		return nil, apperror.Invalid("no fields to update")
	}

	customer, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperror.Invalid("customer not found")
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, apperror.Invalid("name cannot be empty")
		}
		customer.Name = *cmd.Name
	}
	if cmd.AdvanceBalance != nil {
		if *cmd.AdvanceBalance < 0 {
			return nil, apperror.Invalid("advance balance cannot be negative")
		}
		customer.AdvanceBalance = *cmd.AdvanceBalance
	}

	if err := h.repo.Update(customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}
