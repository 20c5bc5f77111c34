//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rasoilabs/pos-backend/internal/catalog/delivery/http"
	"github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/internal/catalog/repository"
	"github.com/rasoilabs/pos-backend/internal/catalog/usecase/command"
	inventoryrepo "github.com/rasoilabs/pos-backend/internal/inventory/repository"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// ProvideStockRecorder provides the audit-trail sink for initial stock
func ProvideStockRecorder(db *gorm.DB) command.StockRecorder {
	return inventoryrepo.NewGormInventoryRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideStockRecorder,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, redisClient *redis.Client) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
