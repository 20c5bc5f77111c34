//go:build wireinject
// +build wireinject

package customer

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/rasoilabs/pos-backend/internal/customer/delivery/http"
	"github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/internal/customer/repository"
	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
	orderrepo "github.com/rasoilabs/pos-backend/internal/order/repository"
)

// ProvideCustomerRepository provides the customer repository
func ProvideCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return repository.NewGormCustomerRepository(db)
}

// ProvideOrderRepository provides the order repository for customer stats
func ProvideOrderRepository(db *gorm.DB) orderdomain.OrderRepository {
	return orderrepo.NewGormOrderRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCustomerRepository,
	ProvideOrderRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.CustomerHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCustomerHandler,
	)
	return nil, nil
}
