package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/service"
)

func TestGenerateOrderStatusMessage(t *testing.T) {
	t.Parallel()

	t.Run("english templates", func(t *testing.T) {
		t.Parallel()

		msg := service.GenerateOrderStatusMessage(models.OrderShipped, "VS-1001", "Maria", models.LangEnglish)
		assert.Contains(t, msg, "Maria")
		assert.Contains(t, msg, "VS-1001")
		assert.Contains(t, msg, "out for delivery")
	})

	t.Run("spanish templates", func(t *testing.T) {
		t.Parallel()

		msg := service.GenerateOrderStatusMessage(models.OrderConfirmed, "VS-1002", "Carlos", models.LangSpanish)
		assert.Contains(t, msg, "Carlos")
		assert.Contains(t, msg, "VS-1002")
		assert.Contains(t, msg, "confirmado")
	})

	t.Run("every status has both languages", func(t *testing.T) {
		t.Parallel()

		statuses := []models.OrderStatus{
			models.OrderConfirmed, models.OrderProcessing, models.OrderShipped,
			models.OrderDelivered, models.OrderCancelled,
		}
		for _, status := range statuses {
			en := service.GenerateOrderStatusMessage(status, "N", "C", models.LangEnglish)
			es := service.GenerateOrderStatusMessage(status, "N", "C", models.LangSpanish)
			assert.NotEmpty(t, en, "status %s en", status)
			assert.NotEmpty(t, es, "status %s es", status)
			assert.NotEqual(t, en, es, "status %s should be localized", status)
		}
	})

	t.Run("unknown status falls back to generic", func(t *testing.T) {
		t.Parallel()

		msg := service.GenerateOrderStatusMessage(models.OrderPending, "VS-1003", "Ana", models.LangEnglish)
		assert.Contains(t, msg, "update on your order")
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		t.Parallel()

		msg := service.GenerateOrderStatusMessage(models.OrderDelivered, "VS-1004", "Luis", models.Language("fr"))
		assert.Contains(t, msg, "has been delivered")
	})
}
