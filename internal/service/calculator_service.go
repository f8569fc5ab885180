package service

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/formula"
	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// CalculatorService evaluates material calculators and logs usage.
type CalculatorService struct {
	calcRepo *repository.CalculatorRepository
}

// NewCalculatorService constructs a CalculatorService.
func NewCalculatorService(calcRepo *repository.CalculatorRepository) *CalculatorService {
	return &CalculatorService{calcRepo: calcRepo}
}

// EvaluationResult is returned from a successful evaluation.
type EvaluationResult struct {
	Result         float64 `json:"result"`
	Unit           string  `json:"unit"`
	CalculatorName string  `json:"calculatorName"`
}

// MissingVariableError names the variable the caller failed to supply. The
// label is bilingual so the storefront can show it directly.
type MissingVariableError struct {
	Name    string
	LabelEn string
	LabelEs string
}

func (e *MissingVariableError) Error() string {
	return "missing value for " + e.LabelEn
}

// List returns active calculators.
func (s *CalculatorService) List() ([]models.Calculator, error) {
	return s.calcRepo.GetActive()
}

// Get returns one calculator.
func (s *CalculatorService) Get(id int) (*models.Calculator, error) {
	calc, err := s.calcRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return calc, nil
}

// Evaluate runs a calculator against the supplied inputs. Every declared
// variable must be present; the evaluation is logged with caller metadata
// regardless of who asked.
func (s *CalculatorService) Evaluate(calculatorID int, inputs map[string]float64, userID *int, ip string) (*EvaluationResult, error) {
	calc, err := s.Get(calculatorID)
	if err != nil {
		return nil, err
	}
	if !calc.IsActive {
		return nil, utils.ErrNotFound
	}

	// Check declared variables up front so the error names the label the
	// customer saw, not the placeholder token.
	for _, v := range calc.Variables {
		if _, ok := inputs[v.Name]; !ok {
			return nil, &MissingVariableError{Name: v.Name, LabelEn: v.LabelEn, LabelEs: v.LabelEs}
		}
	}

	value, err := formula.Evaluate(calc.Formula, inputs)
	if err != nil {
		return nil, err
	}

	rawInputs, _ := json.Marshal(inputs)
	usage := &models.CalculatorUsage{
		CalculatorID: calc.ID,
		UserID:       userID,
		IPAddress:    ip,
		Inputs:       rawInputs,
		Result:       value,
	}
	if err := s.calcRepo.LogUsage(usage); err != nil {
		log.Warn().Err(err).Int("calculator_id", calc.ID).Msg("Failed to log calculator usage")
	}

	return &EvaluationResult{
		Result:         value,
		Unit:           calc.ResultUnit,
		CalculatorName: calc.NameEn,
	}, nil
}
