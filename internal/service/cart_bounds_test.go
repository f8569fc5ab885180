package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

func TestCheckQuantityBounds(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		MinOrderQty: 2,
		MaxOrderQty: 10,
		StockQty:    8,
	}

	assert.NoError(t, checkQuantityBounds(product, 2))
	assert.NoError(t, checkQuantityBounds(product, 8))

	assert.ErrorIs(t, checkQuantityBounds(product, 1), utils.ErrQuantityOutOfRange)
	assert.ErrorIs(t, checkQuantityBounds(product, 11), utils.ErrQuantityOutOfRange)
	// Within the order limits but above stock.
	assert.ErrorIs(t, checkQuantityBounds(product, 9), utils.ErrOutOfStock)
}

func TestCheckQuantityBoundsNoMax(t *testing.T) {
	t.Parallel()

	// MaxOrderQty of zero means no upper order limit; stock still caps.
	product := &models.Product{
		MinOrderQty: 1,
		MaxOrderQty: 0,
		StockQty:    500,
	}

	assert.NoError(t, checkQuantityBounds(product, 400))
	assert.ErrorIs(t, checkQuantityBounds(product, 501), utils.ErrOutOfStock)
}

func TestMaxAllowedQuantity(t *testing.T) {
	t.Parallel()

	// This limit is enforced inside the upsert statement, so concurrent
	// adds to the same row cannot combine past it.
	assert.Equal(t, 8, maxAllowedQuantity(&models.Product{MaxOrderQty: 10, StockQty: 8}))
	assert.Equal(t, 10, maxAllowedQuantity(&models.Product{MaxOrderQty: 10, StockQty: 25}))
	// No order limit configured; stock alone caps.
	assert.Equal(t, 500, maxAllowedQuantity(&models.Product{MaxOrderQty: 0, StockQty: 500}))
	assert.Equal(t, 0, maxAllowedQuantity(&models.Product{MaxOrderQty: 10, StockQty: 0}))
}
