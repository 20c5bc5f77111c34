package query

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/catalog/domain"
)

// ListCategoriesQuery represents the query to list menu tabs
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles the list categories query
type ListCategoriesHandler struct {
	categories domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(categories domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{categories: categories}
}

// Handle executes the list categories query, ordered by display_order
func (h *ListCategoriesHandler) Handle(_ ListCategoriesQuery) ([]domain.Category, error) {
	categories, err := h.categories.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}
