package service

import "github.com/VerdeSupply/storefront_api/internal/models"

// ResolvePrice selects the unit price for a product given the buyer's
// account tier. Wholesale and contractor prices are optional overrides;
// a missing override falls back to the retail price. Admin accounts buy at
// retail. Pure function, no rounding beyond the stored cents.
func ResolvePrice(p *models.Product, tier models.AccountType) int64 {
	switch tier {
	case models.AccountWholesale:
		if p.WholesalePriceCents != nil {
			return *p.WholesalePriceCents
		}
		return p.PriceCents
	case models.AccountContractor:
		if p.ContractorPriceCents != nil {
			return *p.ContractorPriceCents
		}
		return p.PriceCents
	case models.AccountRetail, models.AccountAdmin:
		return p.PriceCents
	default:
		return p.PriceCents
	}
}
