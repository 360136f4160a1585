package models

// AccountKind represents the kind of account
type AccountKind string

const (
	AccountKindCash     AccountKind = "cash"
	AccountKindChecking AccountKind = "checking"
	AccountKindSavings  AccountKind = "savings"
	AccountKindCredit   AccountKind = "credit"
)

// Account represents a financial account in the system. Balance is a running
// total in cents, denominated in Currency. It is mutated only through the
// transaction ledger's adjustment protocol or a direct user edit.
type Account struct {
	Base
	UserID   string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string      `gorm:"not null" json:"name"`
	Kind     AccountKind `gorm:"not null" json:"kind"`
	Currency string      `gorm:"not null;default:'USD'" json:"currency"`
	Balance  int64       `gorm:"type:bigint;not null;default:0" json:"balance"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
