//go:build wireinject
// +build wireinject

package storefront

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	"github.com/glowmart/storefront/internal/cart"
	carthttp "github.com/glowmart/storefront/internal/cart/delivery/http"
	cartdomain "github.com/glowmart/storefront/internal/cart/domain"
	cartrepo "github.com/glowmart/storefront/internal/cart/repository"
	cartcommand "github.com/glowmart/storefront/internal/cart/usecase/command"
	cataloghttp "github.com/glowmart/storefront/internal/catalog/delivery/http"
	"github.com/glowmart/storefront/internal/catalog/source"
	catalogquery "github.com/glowmart/storefront/internal/catalog/usecase/query"
)

// ProvideCartRepository provides the Redis-backed cart repository
func ProvideCartRepository(client *redis.Client) cartdomain.CartRepository {
	return cartrepo.NewRedisCartRepository(client, cartrepo.DefaultCartTTL)
}

// ProvideProductSource provides the product source for the catalog
func ProvideProductSource(client *source.Client) catalogquery.ProductSource {
	return client
}

// Wire sets
var CartSet = wire.NewSet(
	ProvideCartRepository,
	cart.NewStore,
)

// InitializeCartHandler initializes the cart HTTP handler with all dependencies
func InitializeCartHandler(client *redis.Client, publisher cartcommand.EventPublisher) (*carthttp.CartHandler, error) {
	wire.Build(
		CartSet,
		carthttp.NewCartHandler,
	)
	return nil, nil
}

// InitializeCatalogHandler initializes the catalog HTTP handler
func InitializeCatalogHandler(client *source.Client) (*cataloghttp.CatalogHandler, error) {
	wire.Build(
		ProvideProductSource,
		cataloghttp.NewCatalogHandler,
	)
	return nil, nil
}
