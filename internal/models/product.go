package models

import "time"

// Product represents a catalog entry. Names and descriptions are stored in
// both English and Spanish; prices are stored in cents. Retail price is
// always present, contractor/wholesale prices are optional tier overrides.
type Product struct {
	ID                   int       `db:"id" json:"id"`
	SKU                  string    `db:"sku" json:"sku"`
	NameEn               string    `db:"name_en" json:"nameEn"`
	NameEs               string    `db:"name_es" json:"nameEs"`
	DescriptionEn        string    `db:"description_en" json:"descriptionEn"`
	DescriptionEs        string    `db:"description_es" json:"descriptionEs"`
	CategoryID           int       `db:"category_id" json:"categoryId"`
	PriceCents           int64     `db:"price_cents" json:"priceCents"`
	ContractorPriceCents *int64    `db:"contractor_price_cents" json:"contractorPriceCents,omitempty"`
	WholesalePriceCents  *int64    `db:"wholesale_price_cents" json:"wholesalePriceCents,omitempty"`
	StockQty             int       `db:"stock_qty" json:"stockQty"`
	MinOrderQty          int       `db:"min_order_qty" json:"minOrderQty"`
	MaxOrderQty          int       `db:"max_order_qty" json:"maxOrderQty"`
	DeliveryAvailable    bool      `db:"delivery_available" json:"deliveryAvailable"`
	DeliveryFeeCents     int64     `db:"delivery_fee_cents" json:"deliveryFeeCents"`
	IsActive             bool      `db:"is_active" json:"isActive"`
	ZohoItemID           *string   `db:"zoho_item_id" json:"zohoItemId,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"-"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

// Name returns the product name in the requested language.
func (p *Product) Name(lang Language) string {
	if lang == LangSpanish && p.NameEs != "" {
		return p.NameEs
	}
	return p.NameEn
}

// Description returns the product description in the requested language.
func (p *Product) Description(lang Language) string {
	if lang == LangSpanish && p.DescriptionEs != "" {
		return p.DescriptionEs
	}
	return p.DescriptionEn
}

// Category groups products; names are bilingual like products.
type Category struct {
	ID        int       `db:"id" json:"id"`
	NameEn    string    `db:"name_en" json:"nameEn"`
	NameEs    string    `db:"name_es" json:"nameEs"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
