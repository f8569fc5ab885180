package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/service"
)

func intp(v int64) *int64 { return &v }

func TestResolvePrice(t *testing.T) {
	t.Parallel()

	full := &models.Product{
		PriceCents:           1000,
		ContractorPriceCents: intp(850),
		WholesalePriceCents:  intp(700),
	}
	retailOnly := &models.Product{PriceCents: 1000}

	tests := []struct {
		name    string
		product *models.Product
		tier    models.AccountType
		want    int64
	}{
		{"retail gets retail price", full, models.AccountRetail, 1000},
		{"contractor gets override", full, models.AccountContractor, 850},
		{"wholesale gets override", full, models.AccountWholesale, 700},
		{"admin buys at retail", full, models.AccountAdmin, 1000},
		{"contractor falls back to retail", retailOnly, models.AccountContractor, 1000},
		{"wholesale falls back to retail", retailOnly, models.AccountWholesale, 1000},
		{"unknown tier falls back to retail", full, models.AccountType("reseller"), 1000},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, service.ResolvePrice(tt.product, tt.tier))
		})
	}
}

func TestParseAccountType(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"retail", "contractor", "wholesale", "admin"} {
		got, err := models.ParseAccountType(raw)
		assert.NoError(t, err)
		assert.Equal(t, models.AccountType(raw), got)
	}

	_, err := models.ParseAccountType("vip")
	assert.Error(t, err)
}
