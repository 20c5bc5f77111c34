package command

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// CreateCategoryCommand represents the command to create a menu tab
type CreateCategoryCommand struct {
	Name         string
	DisplayOrder int
}

// CreateCategoryHandler handles category creation
type CreateCategoryHandler struct {
	categories domain.CategoryRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(categories domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{categories: categories}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(cmd CreateCategoryCommand) (*domain.Category, error) {
	if cmd.Name == "" {
		return nil, apperror.Invalid("category name is required")
	}

	category := &domain.Category{
		Name:         cmd.Name,
		DisplayOrder: cmd.DisplayOrder,
	}

	if err := h.categories.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
