package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

// CustomerRepository handles data access for customer accounts.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetByID returns one customer by id.
func (r *CustomerRepository) GetByID(id int) (*models.Customer, error) {
	const q = `SELECT * FROM customers WHERE id = $1 LIMIT 1`
	var c models.Customer
	if err := r.db.Get(&c, q, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByEmail returns one customer by email.
func (r *CustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	const q = `SELECT * FROM customers WHERE email = $1 LIMIT 1`
	var c models.Customer
	if err := r.db.Get(&c, q, email); err != nil {
		return nil, err
	}
	return &c, nil
}

// EmailExists reports whether an email is already registered.
func (r *CustomerRepository) EmailExists(email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`
	var exists bool
	if err := r.db.Get(&exists, q, email); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new customer and populates its id and timestamps.
func (r *CustomerRepository) Create(c *models.Customer) error {
	const q = `
        INSERT INTO customers (email, password_hash, name, phone, account_type, language, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q,
		c.Email, c.PasswordHash, c.Name, c.Phone, c.AccountType, c.Language, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// UpdateProfile updates user-editable profile fields.
func (r *CustomerRepository) UpdateProfile(id int, name, phone string, language models.Language) error {
	const q = `
        UPDATE customers
        SET name = $2, phone = $3, language = $4, updated_at = NOW()
        WHERE id = $1`
	res, err := r.db.Exec(q, id, name, phone, language)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetZohoContactID records the CRM id after customer sync. Only the
// synchronizer writes this field.
func (r *CustomerRepository) SetZohoContactID(id int, zohoContactID string) error {
	const q = `UPDATE customers SET zoho_contact_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, zohoContactID)
	return err
}
