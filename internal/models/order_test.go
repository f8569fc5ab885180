package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	t.Run("forward moves allowed", func(t *testing.T) {
		t.Parallel()

		assert.True(t, models.OrderPending.CanTransition(models.OrderConfirmed))
		assert.True(t, models.OrderConfirmed.CanTransition(models.OrderProcessing))
		assert.True(t, models.OrderProcessing.CanTransition(models.OrderShipped))
		assert.True(t, models.OrderShipped.CanTransition(models.OrderDelivered))
		// Skipping intermediate states is still forward.
		assert.True(t, models.OrderPending.CanTransition(models.OrderShipped))
	})

	t.Run("backward moves rejected", func(t *testing.T) {
		t.Parallel()

		assert.False(t, models.OrderDelivered.CanTransition(models.OrderShipped))
		assert.False(t, models.OrderShipped.CanTransition(models.OrderConfirmed))
		assert.False(t, models.OrderConfirmed.CanTransition(models.OrderPending))
	})

	t.Run("self transition rejected", func(t *testing.T) {
		t.Parallel()

		assert.False(t, models.OrderProcessing.CanTransition(models.OrderProcessing))
	})

	t.Run("cancelled reachable from any non-terminal state", func(t *testing.T) {
		t.Parallel()

		for _, from := range []models.OrderStatus{
			models.OrderPending, models.OrderConfirmed,
			models.OrderProcessing, models.OrderShipped,
		} {
			assert.True(t, from.CanTransition(models.OrderCancelled), "from %s", from)
		}
		assert.False(t, models.OrderDelivered.CanTransition(models.OrderCancelled))
		assert.False(t, models.OrderCancelled.CanTransition(models.OrderCancelled))
	})

	t.Run("no exit from cancelled", func(t *testing.T) {
		t.Parallel()

		for _, to := range []models.OrderStatus{
			models.OrderPending, models.OrderConfirmed, models.OrderProcessing,
			models.OrderShipped, models.OrderDelivered,
		} {
			assert.False(t, models.OrderCancelled.CanTransition(to), "to %s", to)
		}
	})
}

func TestPaymentStatusTransitions(t *testing.T) {
	t.Parallel()

	assert.True(t, models.PaymentPending.CanTransition(models.PaymentPaid))
	assert.True(t, models.PaymentPending.CanTransition(models.PaymentFailed))
	assert.True(t, models.PaymentFailed.CanTransition(models.PaymentPaid))
	assert.True(t, models.PaymentPaid.CanTransition(models.PaymentRefunded))

	// paid is terminal except for refund; a second capture is illegal.
	assert.False(t, models.PaymentPaid.CanTransition(models.PaymentPaid))
	assert.False(t, models.PaymentPaid.CanTransition(models.PaymentPending))
	assert.False(t, models.PaymentRefunded.CanTransition(models.PaymentPaid))
	assert.False(t, models.PaymentPending.CanTransition(models.PaymentRefunded))
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	assert.True(t, models.OrderCancelled.Valid())
	assert.True(t, models.OrderPending.Valid())
	assert.False(t, models.OrderStatus("archived").Valid())

	assert.True(t, models.PaymentRefunded.Valid())
	assert.False(t, models.PaymentStatus("chargeback").Valid())
}
