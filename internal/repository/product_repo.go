package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

// ProductRepository handles data access for products and categories.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetActive returns active products, optionally filtered by category.
func (r *ProductRepository) GetActive(categoryID int) ([]models.Product, error) {
	const q = `
        SELECT * FROM products
        WHERE is_active = true
        AND ($1 = 0 OR category_id = $1)
        ORDER BY category_id, name_en`
	var products []models.Product
	if err := r.db.Select(&products, q, categoryID); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySKU returns a single product by sku.
func (r *ProductRepository) GetBySKU(sku string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE sku = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, sku); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products (
            sku, name_en, name_es, description_en, description_es, category_id,
            price_cents, contractor_price_cents, wholesale_price_cents,
            stock_qty, min_order_qty, max_order_qty,
            delivery_available, delivery_fee_cents, is_active
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q,
		p.SKU, p.NameEn, p.NameEs, p.DescriptionEn, p.DescriptionEs, p.CategoryID,
		p.PriceCents, p.ContractorPriceCents, p.WholesalePriceCents,
		p.StockQty, p.MinOrderQty, p.MaxOrderQty,
		p.DeliveryAvailable, p.DeliveryFeeCents, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update updates an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
        UPDATE products SET
            sku = $1, name_en = $2, name_es = $3, description_en = $4, description_es = $5,
            category_id = $6, price_cents = $7, contractor_price_cents = $8,
            wholesale_price_cents = $9, stock_qty = $10, min_order_qty = $11,
            max_order_qty = $12, delivery_available = $13, delivery_fee_cents = $14,
            is_active = $15, updated_at = NOW()
        WHERE id = $16
        RETURNING updated_at`
	return r.db.QueryRowx(q,
		p.SKU, p.NameEn, p.NameEs, p.DescriptionEn, p.DescriptionEs,
		p.CategoryID, p.PriceCents, p.ContractorPriceCents,
		p.WholesalePriceCents, p.StockQty, p.MinOrderQty,
		p.MaxOrderQty, p.DeliveryAvailable, p.DeliveryFeeCents,
		p.IsActive, p.ID,
	).Scan(&p.UpdatedAt)
}

// Delete deletes a product by id.
func (r *ProductRepository) Delete(id int) error {
	const q = `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(q, id)
	return err
}

// SetZohoItemID records the Books item id after item sync.
func (r *ProductRepository) SetZohoItemID(id int, zohoItemID string) error {
	const q = `UPDATE products SET zoho_item_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, zohoItemID)
	return err
}

// GetByZohoItemID returns a product previously linked to a Books item.
func (r *ProductRepository) GetByZohoItemID(zohoItemID string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE zoho_item_id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, zohoItemID); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecrementStock reduces stock for a purchased quantity, refusing to go
// negative.
func (r *ProductRepository) DecrementStock(id, qty int) error {
	const q = `
        UPDATE products SET stock_qty = stock_qty - $2, updated_at = NOW()
        WHERE id = $1 AND stock_qty >= $2`
	res, err := r.db.Exec(q, id, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("insufficient stock for product %d", id)
	}
	return nil
}

// AdminProductFilter holds filters for admin product queries.
type AdminProductFilter struct {
	CategoryID int
	Search     string
	IsActive   *bool
	Page       int
	Limit      int
}

// GetAllAdmin returns products for admin with filters and pagination
// (includes inactive). Search matches sku and both name languages.
func (r *ProductRepository) GetAllAdmin(filter *AdminProductFilter) ([]models.Product, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit

	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.CategoryID > 0 {
		baseWhere += fmt.Sprintf(" AND category_id = $%d", argIdx)
		args = append(args, filter.CategoryID)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (sku ILIKE $%d OR name_en ILIKE $%d OR name_es ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.IsActive != nil {
		baseWhere += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}

	countQuery := `SELECT COUNT(1) FROM products ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		`SELECT * FROM products %s ORDER BY category_id, name_en LIMIT $%d OFFSET $%d`,
		baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var products []models.Product
	if err := r.db.Select(&products, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetCategories returns all active categories.
func (r *ProductRepository) GetCategories() ([]models.Category, error) {
	const q = `SELECT * FROM categories WHERE is_active = true ORDER BY name_en`
	var categories []models.Category
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}
