package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/expense/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// DeleteExpenseCommand removes an expense entry
type DeleteExpenseCommand struct {
	ID uint
}

// DeleteExpenseHandler handles the delete expense command
type DeleteExpenseHandler struct {
	repo domain.ExpenseRepository
}

// NewDeleteExpenseHandler creates a new delete handler
func NewDeleteExpenseHandler(repo domain.ExpenseRepository) *DeleteExpenseHandler {
	return &DeleteExpenseHandler{repo: repo}
}

// Handle executes the delete command
func (h *DeleteExpenseHandler) Handle(cmd DeleteExpenseCommand) error {
	if _, err := h.repo.FindByID(cmd.ID); err != nil {
		return apperror.Invalid("expense not found")
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
