package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glowmart/storefront/internal/product/domain"
)

// The traced repository is what the service wires, so it must satisfy the
// same contract as the plain one.
func TestTracedRepositorySatisfiesContract(t *testing.T) {
	assert.Implements(t, (*domain.ProductRepository)(nil), new(GormProductRepositoryWithTracing))
	assert.Implements(t, (*domain.ProductRepository)(nil), new(GormProductRepository))
}
