//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	catalogrepo "github.com/rasoilabs/pos-backend/internal/catalog/repository"
	customerdomain "github.com/rasoilabs/pos-backend/internal/customer/domain"
	customerrepo "github.com/rasoilabs/pos-backend/internal/customer/repository"
	"github.com/rasoilabs/pos-backend/internal/order/delivery/http"
	"github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/internal/order/repository"
	"github.com/rasoilabs/pos-backend/internal/order/usecase/command"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// ProvideProductRepository provides the product repository for snapshots
func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepo.NewGormProductRepository(db)
}

// ProvideCustomerRepository provides the customer repository for advances
func ProvideCustomerRepository(db *gorm.DB) customerdomain.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideProductRepository,
	ProvideCustomerRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.EventPublisher, redisClient *redis.Client) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewOrderHandler,
	)
	return nil, nil
}
