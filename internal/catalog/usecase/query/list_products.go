package query

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/catalog/domain"
)

// ListProductsQuery represents the query to list menu items
type ListProductsQuery struct {
	CategoryID  uint
	EnabledOnly bool
}

// ListProductsHandler handles the list products query
type ListProductsHandler struct {
	products domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(products domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{products: products}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(query ListProductsQuery) ([]domain.Product, error) {
	products, err := h.products.FindAll(domain.ProductFilter{
		CategoryID:  query.CategoryID,
		EnabledOnly: query.EnabledOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}
