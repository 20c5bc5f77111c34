package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/expense/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/timeutil"
)

// UpdateExpenseCommand replaces the editable fields of an expense
type UpdateExpenseCommand struct {
	ID          uint
	Description *string
	Amount      *float64
	Category    *string
	ExpenseDate *string
	Notes       *string
}

// UpdateExpenseHandler handles the update expense command
type UpdateExpenseHandler struct {
	repo domain.ExpenseRepository
}

// NewUpdateExpenseHandler creates a new update handler
func NewUpdateExpenseHandler(repo domain.ExpenseRepository) *UpdateExpenseHandler {
	return &UpdateExpenseHandler{repo: repo}
}

// Handle executes the update command. Only fields present in the request
// change.
func (h *UpdateExpenseHandler) Handle(cmd UpdateExpenseCommand) (*domain.Expense, error) {
	expense, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperror.Invalid("expense not found")
	}

	if cmd.Description != nil {
		if *cmd.Description == "" {
			return nil, apperror.Invalid("description cannot be empty")
		}
		expense.Description = *cmd.Description
	}
	if cmd.Amount != nil {
		if *cmd.Amount <= 0 {
			return nil, apperror.Invalid("amount must be positive")
		}
		expense.Amount = *cmd.Amount
	}
	if cmd.Category != nil {
		expense.Category = *cmd.Category
	}
	if cmd.ExpenseDate != nil {
		if _, err := timeutil.ParseDate(*cmd.ExpenseDate); err != nil {
			return nil, apperror.Invalid("invalid expense date: %w", err)
		}
		expense.ExpenseDate = *cmd.ExpenseDate
	}
	if cmd.Notes != nil {
		expense.Notes = *cmd.Notes
	}

	if err := h.repo.Update(expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return expense, nil
}
