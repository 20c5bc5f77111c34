//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	catalogrepo "github.com/rasoilabs/pos-backend/internal/catalog/repository"
	"github.com/rasoilabs/pos-backend/internal/inventory/delivery/http"
	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
	"github.com/rasoilabs/pos-backend/internal/inventory/repository"
)

// ProvideInventoryRepository provides the inventory repository
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewGormInventoryRepository(db)
}

// ProvideProductRepository provides the product repository for stock reports
func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepo.NewGormProductRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
	ProvideProductRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, redisClient *redis.Client) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
