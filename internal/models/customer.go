package models

import (
	"fmt"
	"time"
)

// AccountType classifies a customer account. It drives both the price tier
// applied in the catalog and access to admin routes.
type AccountType string

const (
	AccountRetail     AccountType = "retail"
	AccountContractor AccountType = "contractor"
	AccountWholesale  AccountType = "wholesale"
	AccountAdmin      AccountType = "admin"
)

// ParseAccountType validates a raw account type string.
func ParseAccountType(raw string) (AccountType, error) {
	switch AccountType(raw) {
	case AccountRetail, AccountContractor, AccountWholesale, AccountAdmin:
		return AccountType(raw), nil
	default:
		return "", fmt.Errorf("unknown account type %q", raw)
	}
}

// Language is the customer's preferred notification language.
type Language string

const (
	LangEnglish Language = "en"
	LangSpanish Language = "es"
)

// Customer represents a storefront account (retail, contractor, wholesale, admin).
type Customer struct {
	ID            int         `db:"id" json:"id"`
	Email         string      `db:"email" json:"email"`
	PasswordHash  string      `db:"password_hash" json:"-"`
	Name          string      `db:"name" json:"name"`
	Phone         string      `db:"phone" json:"phone"`
	AccountType   AccountType `db:"account_type" json:"accountType"`
	Language      Language    `db:"language" json:"language"`
	ZohoContactID *string     `db:"zoho_contact_id" json:"zohoContactId,omitempty"`
	IsActive      bool        `db:"is_active" json:"isActive"`
	CreatedAt     time.Time   `db:"created_at" json:"-"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`
}

// IsAdmin reports whether the customer may access admin routes.
func (c *Customer) IsAdmin() bool {
	return c.AccountType == AccountAdmin
}
