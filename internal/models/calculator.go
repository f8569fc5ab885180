package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Calculator is a published material calculator (e.g. tonnage, area).
// The formula contains {variableName} placeholders resolved against the
// declared variables at evaluation time. Calculators are immutable once
// published; usage is logged separately.
type Calculator struct {
	ID         int                  `db:"id" json:"id"`
	NameEn     string               `db:"name_en" json:"nameEn"`
	NameEs     string               `db:"name_es" json:"nameEs"`
	Formula    string               `db:"formula" json:"formula"`
	Variables  CalculatorVariables  `db:"variables" json:"variables"`
	ResultUnit string               `db:"result_unit" json:"resultUnit"`
	Category   string               `db:"category" json:"category"`
	IsActive   bool                 `db:"is_active" json:"isActive"`
	CreatedAt  time.Time            `db:"created_at" json:"-"`
}

// CalculatorVariable declares one named input with bilingual labels.
type CalculatorVariable struct {
	Name    string `json:"name"`
	LabelEn string `json:"labelEn"`
	LabelEs string `json:"labelEs"`
	Unit    string `json:"unit"`
}

// CalculatorVariables is stored as a JSONB column.
type CalculatorVariables []CalculatorVariable

// Scan implements sql.Scanner for the JSONB variables column.
func (v *CalculatorVariables) Scan(src interface{}) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	case nil:
		*v = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for calculator variables: %T", src)
	}
}

// CalculatorUsage records one evaluation for audit purposes.
type CalculatorUsage struct {
	ID           int             `db:"id" json:"id"`
	CalculatorID int             `db:"calculator_id" json:"calculatorId"`
	UserID       *int            `db:"user_id" json:"userId,omitempty"`
	IPAddress    string          `db:"ip_address" json:"ipAddress"`
	Inputs       json.RawMessage `db:"inputs" json:"inputs"`
	Result       float64         `db:"result" json:"result"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
}
