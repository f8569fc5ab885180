package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

// CalculatorRepository handles data access for calculators and usage logs.
type CalculatorRepository struct {
	db *sqlx.DB
}

// NewCalculatorRepository creates a new CalculatorRepository.
func NewCalculatorRepository(db *sqlx.DB) *CalculatorRepository {
	return &CalculatorRepository{db: db}
}

// GetActive returns all active calculators.
func (r *CalculatorRepository) GetActive() ([]models.Calculator, error) {
	const q = `SELECT * FROM calculators WHERE is_active = true ORDER BY category, name_en`
	var calculators []models.Calculator
	if err := r.db.Select(&calculators, q); err != nil {
		return nil, err
	}
	return calculators, nil
}

// GetByID returns one calculator by id.
func (r *CalculatorRepository) GetByID(id int) (*models.Calculator, error) {
	const q = `SELECT * FROM calculators WHERE id = $1 LIMIT 1`
	var calc models.Calculator
	if err := r.db.Get(&calc, q, id); err != nil {
		return nil, err
	}
	return &calc, nil
}

// LogUsage records one evaluation. Calculators themselves are immutable;
// only this log grows.
func (r *CalculatorRepository) LogUsage(usage *models.CalculatorUsage) error {
	const q = `
        INSERT INTO calculator_usage (calculator_id, user_id, ip_address, inputs, result)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.db.QueryRowx(q,
		usage.CalculatorID, usage.UserID, usage.IPAddress, usage.Inputs, usage.Result,
	).Scan(&usage.ID, &usage.CreatedAt)
}
